// Package picker implements an interactive terminal list for choosing one
// directory of a workspace. It backs `wsp dir rm` when no path is given.
package picker
