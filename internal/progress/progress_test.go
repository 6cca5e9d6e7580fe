package progress

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModelTracksProgress(t *testing.T) {
	m := NewModel(200, nil)
	assert.Nil(t, m.Init())
	assert.InDelta(t, 0.0, m.Percent(), 1e-9)

	m, cmd := update(t, m, UpdateMsg{Done: 50, Total: 200})
	assert.Nil(t, cmd)
	assert.InDelta(t, 0.25, m.Percent(), 1e-9)
	assert.Contains(t, m.View(), "50/200 rounds")
	assert.Contains(t, m.View(), "ctrl+c to stop")

	m, _ = update(t, m, UpdateMsg{Done: 250})
	assert.InDelta(t, 1.0, m.Percent(), 1e-9, "percent is capped")
}

func TestModelDoneQuits(t *testing.T) {
	m := NewModel(10, nil)
	m, cmd := update(t, m, DoneMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.NotContains(t, m.View(), "ctrl+c to stop")
}

func TestModelInterrupt(t *testing.T) {
	called := false
	m := NewModel(10, func() { called = true })

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, called)
	assert.Contains(t, m.View(), "(interrupted)")

	// other keys are ignored
	m, cmd = update(t, NewModel(10, nil), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd)
	assert.NotContains(t, m.View(), "interrupted")
}

func TestModelResizes(t *testing.T) {
	m := NewModel(10, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})
	assert.Equal(t, 22, m.bar.Width)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 300, Height: 10})
	assert.Equal(t, maxWidth, m.bar.Width)
}

func TestModelZeroTotal(t *testing.T) {
	assert.InDelta(t, 0.0, NewModel(0, nil).Percent(), 1e-9)
}
