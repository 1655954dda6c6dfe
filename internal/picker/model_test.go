package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wsp/pkg/types"
)

func testWorkspace() *types.Workspace {
	ws := types.NewWorkspace("demo")
	ws.AddDir(types.Dir{ID: 1, Path: "/src/api"})
	ws.AddDir(types.Dir{ID: 2, Path: "/src/web", Init: "nvm use"})
	return ws
}

func press(t *testing.T, m *model, k tea.KeyType) tea.Cmd {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	require.Same(t, m, next)
	return cmd
}

func TestModel_EnterSelectsCurrent(t *testing.T) {
	m := newModel(testWorkspace(), DefaultConfig())

	cmd := press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	require.NotNil(t, m.selected)
	assert.Equal(t, "/src/api", m.selected.Path)
	assert.Equal(t, int64(1), m.selected.ID)
	assert.False(t, m.cancelled)
	assert.Empty(t, m.View())
}

func TestModel_NavigateThenSelect(t *testing.T) {
	m := newModel(testWorkspace(), DefaultConfig())

	press(t, m, tea.KeyDown)
	press(t, m, tea.KeyEnter)

	require.NotNil(t, m.selected)
	assert.Equal(t, "/src/web", m.selected.Path)
	assert.Equal(t, "nvm use", m.selected.Init)
}

func TestModel_UpStaysOnFirst(t *testing.T) {
	m := newModel(testWorkspace(), DefaultConfig())

	press(t, m, tea.KeyUp)
	press(t, m, tea.KeyEnter)

	require.NotNil(t, m.selected)
	assert.Equal(t, "/src/api", m.selected.Path)
}

func TestModel_Cancel(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		t.Run(tea.KeyMsg{Type: k}.String(), func(t *testing.T) {
			m := newModel(testWorkspace(), DefaultConfig())

			cmd := press(t, m, k)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.True(t, m.cancelled)
			assert.Nil(t, m.selected)
		})
	}
}

func TestModel_ViewListsDirectories(t *testing.T) {
	m := newModel(testWorkspace(), DefaultConfig())

	view := m.View()
	assert.Contains(t, view, "Remove a directory from demo")
	assert.Contains(t, view, "/src/api")
	assert.Contains(t, view, "init: nvm use")
	assert.Contains(t, view, "Esc: Cancel")
}

func TestModel_WindowResize(t *testing.T) {
	m := newModel(testWorkspace(), DefaultConfig())

	_, _ = m.Update(tea.WindowSizeMsg{Width: 10, Height: 5})
	assert.Equal(t, 40, m.list.Width())
	assert.Equal(t, 6, m.list.Height())
}

func TestPicker_EmptyWorkspace(t *testing.T) {
	p := New(nil, nil)

	_, ok, err := p.Choose(t.Context(), types.NewWorkspace("empty"))
	require.NoError(t, err)
	assert.False(t, ok)
}
