package types

// DefaultEditor is the editor command used until one is configured
const DefaultEditor = "code"

// Dir is a single directory belonging to exactly one workspace
type Dir struct {
	ID   int64  `json:"id" yaml:"id"`
	Path string `json:"path" yaml:"path"`
	Init string `json:"init,omitempty" yaml:"init,omitempty"` // Empty means no init script
}

// NewDir creates an unsaved directory entry for path
func NewDir(path string) Dir {
	return Dir{Path: path}
}

// HasInit reports whether the directory carries an init script
func (d Dir) HasInit() bool {
	return d.Init != ""
}

// Workspace is a named group of directories opened together
type Workspace struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Dirs []Dir  `json:"dirs" yaml:"dirs"`
}

// NewWorkspace creates an unsaved workspace with no directories
func NewWorkspace(name string) *Workspace {
	return &Workspace{
		Name: name,
		Dirs: []Dir{},
	}
}

// SetID assigns the storage id once. It returns false and leaves the id
// untouched when an id is already set.
func (w *Workspace) SetID(id int64) bool {
	if w.ID != 0 {
		return false
	}
	w.ID = id
	return true
}

// AddDir appends dir, keeping insertion order
func (w *Workspace) AddDir(dir Dir) {
	w.Dirs = append(w.Dirs, dir)
}

// ContainsDir returns the position of the first directory whose path is
// exactly path.
func (w *Workspace) ContainsDir(path string) (int, bool) {
	for i, d := range w.Dirs {
		if d.Path == path {
			return i, true
		}
	}
	return -1, false
}

// Dir returns the directory stored under path
func (w *Workspace) Dir(path string) (Dir, bool) {
	i, ok := w.ContainsDir(path)
	if !ok {
		return Dir{}, false
	}
	return w.Dirs[i], true
}

// RemoveDir removes the first directory matching path. A missing path is a
// no-op and reports false.
func (w *Workspace) RemoveDir(path string) bool {
	i, ok := w.ContainsDir(path)
	if !ok {
		return false
	}
	w.Dirs = append(w.Dirs[:i], w.Dirs[i+1:]...)
	return true
}

// Paths returns the directory paths in order
func (w *Workspace) Paths() []string {
	paths := make([]string, len(w.Dirs))
	for i, d := range w.Dirs {
		paths[i] = d.Path
	}
	return paths
}

// IsEmpty reports whether the workspace has no directories
func (w *Workspace) IsEmpty() bool {
	return len(w.Dirs) == 0
}
