package trio

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/trio/pkg/trio/declare"
	"github.com/BrandonKowalski/trio/pkg/trio/hotreload"
	"github.com/BrandonKowalski/trio/pkg/trio/registry"
)

const sessionScreens = `
[[screen]]
name = "app_screen"
children = ["initial_screen", "settings"]

[[screen]]
name = "initial_screen"

[[screen]]
name = "settings"
`

func writeScreens(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "screens.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestOpen_RequiresScreensFile(t *testing.T) {
	_, err := Open(Options{}, declare.LintCatalog{}, registry.NewMemoryTree())
	assert.ErrorIs(t, err, ErrNoScreensFile)
}

func TestOpen_SchemaError(t *testing.T) {
	dir := t.TempDir()
	path := writeScreens(t, dir, "[[screen]]\nname = \"initial_screen\"\n")

	_, err := Open(Options{ScreensFile: path}, declare.LintCatalog{}, registry.NewMemoryTree())
	require.Error(t, err)
	assert.True(t, IsSchemaError(err))
}

func TestOpen_ResolvesResourcesNextToScreensFile(t *testing.T) {
	dir := t.TempDir()
	path := writeScreens(t, dir, sessionScreens)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.view"), []byte("v1"), 0o644))

	sess, err := Open(Options{ScreensFile: path}, declare.LintCatalog{}, registry.NewMemoryTree())
	require.NoError(t, err)
	defer sess.Close()

	settings, ok := sess.Schema().Lookup("settings")
	require.True(t, ok)
	p, ok := settings.Resource.Path()
	require.True(t, ok)
	assert.Equal(t, "settings.view", p)

	app, _ := sess.Schema().Lookup("app_screen")
	_, ok = app.Resource.Path()
	assert.False(t, ok)
}

func TestSession_ScreenReload(t *testing.T) {
	dir := t.TempDir()
	path := writeScreens(t, dir, sessionScreens)
	tree := registry.NewMemoryTree()

	sess, err := Open(Options{ScreensFile: path}, declare.LintCatalog{}, tree)
	require.NoError(t, err)
	defer sess.Close()

	reports, err := registry.Drain(sess.Registry().CreateAllRemaining())
	require.NoError(t, err)
	require.Len(t, reports, 3)

	settings, _ := sess.Registry().Trio("settings")
	before := settings.View()

	reports, err = sess.HandleReload(context.Background(), hotreload.Request{Screen: "settings"})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "settings", reports[0].Name)
	assert.NotSame(t, before, settings.View())
	assert.True(t, tree.Attached(settings.View()))
	assert.False(t, tree.Attached(before))
}

func TestSession_SchemaReload(t *testing.T) {
	dir := t.TempDir()
	path := writeScreens(t, dir, sessionScreens)
	tree := registry.NewMemoryTree()

	sess, err := Open(Options{ScreensFile: path}, declare.LintCatalog{}, tree)
	require.NoError(t, err)
	defer sess.Close()

	_, err = registry.Drain(sess.Registry().CreateAllRemaining())
	require.NoError(t, err)
	old := sess.Registry()
	oldApp, _ := old.Trio("app_screen")
	oldView := oldApp.View()

	writeScreens(t, dir, sessionScreens+"\n[[screen]]\nname = \"about\"\nparent = \"app_screen\"\n")

	reports, err := sess.HandleReload(context.Background(), hotreload.Request{SchemaChanged: true})
	require.NoError(t, err)
	assert.Len(t, reports, 4)

	assert.NotSame(t, old, sess.Registry())
	assert.Equal(t, []string{"app_screen", "initial_screen", "settings", "about"}, sess.Schema().Names())
	assert.False(t, tree.Attached(oldView))
	assert.False(t, old.IsCreated("app_screen"))

	app, _ := sess.Registry().Trio("app_screen")
	assert.Len(t, tree.Children(nil), 1)
	assert.Len(t, tree.Children(app.View()), 3)
}

func TestSession_SchemaReloadKeepsTreeOnBadDeclarations(t *testing.T) {
	dir := t.TempDir()
	path := writeScreens(t, dir, sessionScreens)
	tree := registry.NewMemoryTree()

	sess, err := Open(Options{ScreensFile: path}, declare.LintCatalog{}, tree)
	require.NoError(t, err)
	defer sess.Close()

	_, err = registry.Drain(sess.Registry().CreateAllRemaining())
	require.NoError(t, err)
	reg := sess.Registry()

	writeScreens(t, dir, sessionScreens+"\n[[screen]]\nname = \"settings\"\n")

	_, err = sess.HandleReload(context.Background(), hotreload.Request{SchemaChanged: true})
	require.Error(t, err)
	assert.True(t, IsSchemaError(err))
	assert.Same(t, reg, sess.Registry())
	assert.True(t, reg.IsCreated("settings"))
}

func TestSession_WatchDisabled(t *testing.T) {
	dir := t.TempDir()
	path := writeScreens(t, dir, sessionScreens)

	sess, err := Open(Options{ScreensFile: path}, declare.LintCatalog{}, registry.NewMemoryTree())
	require.NoError(t, err)

	require.NoError(t, sess.Watch(context.Background()))
	assert.Nil(t, sess.Reloads())
	assert.NoError(t, sess.Close())
}

func TestSession_WatchEnabled(t *testing.T) {
	dir := t.TempDir()
	path := writeScreens(t, dir, sessionScreens)

	sess, err := Open(Options{ScreensFile: path, HotReload: true}, declare.LintCatalog{}, registry.NewMemoryTree())
	require.NoError(t, err)

	require.NoError(t, sess.Watch(context.Background()))
	assert.NotNil(t, sess.Reloads())
	assert.NoError(t, sess.Close())
	assert.Nil(t, sess.Reloads())
}
