package router

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/trio/pkg/trio/declare"
	"github.com/BrandonKowalski/trio/pkg/trio/registry"
	"github.com/BrandonKowalski/trio/pkg/trio/schema"
)

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	doc, err := declare.Decode([]byte(`
screens:
  - name: app_screen
    children: [initial_screen, settings]
  - name: initial_screen
  - name: settings
`), declare.FormatYAML)
	require.NoError(t, err)
	entries, err := doc.Entries(declare.LintCatalog{})
	require.NoError(t, err)
	s, err := schema.Build(entries)
	require.NoError(t, err)
	return registry.New(s, registry.NewMemoryTree())
}

func TestRun_CreatesScreensOnFirstVisit(t *testing.T) {
	reg := newRegistry(t)
	r := New(reg)

	var visited []string
	r.Register("initial_screen", func(tr *registry.Trio, _ any) (any, error) {
		visited = append(visited, tr.Name())
		assert.NotNil(t, tr.View())
		return nil, nil
	})

	r.OnTransition(func(from Screen, _ any, _ *Stack) (Screen, any) {
		return ScreenExit, nil
	})

	require.NoError(t, r.Run("initial_screen", nil))
	assert.Equal(t, []string{"initial_screen"}, visited)
	assert.True(t, reg.IsCreated("app_screen"))
	assert.False(t, reg.IsCreated("settings"))
}

func TestRun_Errors(t *testing.T) {
	reg := newRegistry(t)

	err := New(reg).Run("initial_screen", nil)
	assert.ErrorContains(t, err, "no transition function")

	r := New(reg).OnTransition(func(Screen, any, *Stack) (Screen, any) { return "ghost", nil })
	r.Register("initial_screen", func(*registry.Trio, any) (any, error) { return nil, nil })
	r.Register("ghost", func(*registry.Trio, any) (any, error) { return nil, nil })
	err = r.Run("initial_screen", nil)
	assert.ErrorIs(t, err, registry.ErrNotRegistered)

	boom := errors.New("boom")
	r = New(reg).OnTransition(func(Screen, any, *Stack) (Screen, any) { return ScreenExit, nil })
	r.Register("settings", func(*registry.Trio, any) (any, error) { return nil, boom })
	err = r.Run("settings", nil)
	assert.ErrorIs(t, err, boom)

	err = r.Run("unregistered", nil)
	assert.ErrorContains(t, err, `screen "unregistered" not registered`)
}

func TestStack(t *testing.T) {
	s := NewStack()
	assert.Nil(t, s.Pop())
	assert.Nil(t, s.Peek())

	s.Push("initial_screen", 1, nil)
	s.Push("settings", 2, "scroll")
	s.Push("audio", 3, nil)
	assert.Equal(t, []Screen{"initial_screen", "settings", "audio"}, s.Path())

	top := s.Peek()
	require.NotNil(t, top)
	assert.Equal(t, Screen("audio"), top.Screen)
	assert.Equal(t, 3, s.Len())

	entry := s.PopTo("settings")
	require.NotNil(t, entry)
	assert.Equal(t, "scroll", entry.Resume)
	assert.Equal(t, []Screen{"initial_screen"}, s.Path())

	assert.Nil(t, s.PopTo("ghost"))
	assert.Equal(t, 1, s.Len())

	s.Clear()
	assert.True(t, s.IsEmpty())
}
