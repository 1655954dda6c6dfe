// Package launcher opens workspace directories in an external editor.
//
// Every directory gets its own child process running the configured shell:
//
//	bash -c "code ."            (working directory = the directory path)
//	bash -c "nvm use && code ." (when the directory has an init script)
//
// Children are started detached and released, so editors outlive wsp.
// A failed spawn is recorded in the Report and the loop moves on to the
// next directory.
package launcher
