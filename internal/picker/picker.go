package picker

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dshills/wsp/pkg/types"
)

// Picker asks the user to choose a directory on a terminal
type Picker struct {
	in     io.Reader
	out    io.Writer
	config Config
}

// New creates a Picker reading keys from in and drawing on out
func New(in io.Reader, out io.Writer) *Picker {
	return &Picker{in: in, out: out, config: DefaultConfig()}
}

// Choose runs the list until a directory is picked or the user cancels.
// ok is false on cancel.
func (p *Picker) Choose(ctx context.Context, ws *types.Workspace) (types.Dir, bool, error) {
	if ws.IsEmpty() {
		return types.Dir{}, false, nil
	}

	m := newModel(ws, p.config)
	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := prog.Run()
	if err != nil {
		return types.Dir{}, false, fmt.Errorf("directory picker: %w", err)
	}

	result, ok := final.(*model)
	if !ok || result.selected == nil {
		return types.Dir{}, false, nil
	}
	return *result.selected, true, nil
}
