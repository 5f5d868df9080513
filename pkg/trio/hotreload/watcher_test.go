package hotreload

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/trio/pkg/trio/declare"
	"github.com/BrandonKowalski/trio/pkg/trio/registry"
	"github.com/BrandonKowalski/trio/pkg/trio/schema"
)

const screensTOML = `
[[screen]]
name = "app_screen"
children = ["initial_screen", "settings"]

[[screen]]
name = "initial_screen"

[[screen]]
name = "settings"
children = ["audio"]

[[screen]]
name = "audio"
resource = "shared/audio.view"
`

// fixture writes a declaration file and view resources into a temp dir and
// builds the schema from them.
func fixture(t *testing.T) (dir, declFile string, s *schema.Schema) {
	t.Helper()
	dir = t.TempDir()
	declFile = filepath.Join(dir, "screens.toml")
	require.NoError(t, os.WriteFile(declFile, []byte(screensTOML), 0o644))

	for _, f := range []string{"app_screen.view", "initial_screen.view", "settings.view", "shared/audio.view"} {
		p := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("v1"), 0o644))
	}

	entries, err := declare.LoadFile(declFile, declare.LintCatalog{})
	require.NoError(t, err)
	s, err = schema.Build(entries, schema.WithResolver(schema.DirResolver(dir, "")))
	require.NoError(t, err)
	return dir, declFile, s
}

func abs(t *testing.T, dir, rel string) string {
	t.Helper()
	p, err := filepath.Abs(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return p
}

func TestBatch(t *testing.T) {
	dir, declFile, s := fixture(t)
	idx, err := newPathIndex(s, dir, declFile)
	require.NoError(t, err)

	settings := abs(t, dir, "settings.view")
	audio := abs(t, dir, "shared/audio.view")
	app := abs(t, dir, "app_screen.view")

	reqs := idx.batch([]string{audio, settings, audio}, false)
	require.Len(t, reqs, 2)
	assert.Equal(t, "settings", reqs[0].Screen, "schema order, not event order")
	assert.Equal(t, Request{Screen: "audio", Paths: []string{audio}}, reqs[1])

	reqs = idx.batch([]string{audio, settings}, true)
	require.Len(t, reqs, 1, "audio is rebuilt as a descendant of settings")
	assert.Equal(t, "settings", reqs[0].Screen)
	assert.True(t, reqs[0].WithDescendants)

	reqs = idx.batch([]string{app, declFile}, false)
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].SchemaChanged)

	assert.Empty(t, idx.batch(nil, false))
	assert.Len(t, idx.dirs(), 2)
}

func TestApply(t *testing.T) {
	_, _, s := fixture(t)
	reg := registry.New(s, registry.NewMemoryTree())
	_, err := registry.Drain(reg.CreateAllRemaining())
	require.NoError(t, err)

	tr, _ := reg.Trio("settings")
	before := tr.View()

	reports, err := Apply(reg, Request{Screen: "settings"})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.NotSame(t, before, tr.View())

	_, err = Apply(reg, Request{SchemaChanged: true})
	assert.ErrorIs(t, err, ErrSchemaChanged)
}

func TestWatcher_DeliversRequests(t *testing.T) {
	dir, declFile, s := fixture(t)

	w, err := New(s, dir, declFile, &Options{Debounce: 100 * time.Millisecond})
	require.NoError(t, err)
	require.NoError(t, w.Start(t.Context()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "shared", "audio.view"), []byte("v2"), 0o644))

	select {
	case req := <-w.Requests():
		assert.Equal(t, "audio", req.Screen)
		assert.False(t, req.SchemaChanged)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload request")
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(declFile, []byte(screensTOML+"\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for schemaSeen := false; !schemaSeen; {
		select {
		case req := <-w.Requests():
			schemaSeen = req.SchemaChanged
		case <-deadline:
			t.Fatal("no schema request")
		}
	}

	require.NoError(t, w.Stop())
	for range w.Requests() {
	}

	events, requests := w.Stats()
	assert.GreaterOrEqual(t, events, int64(2))
	assert.GreaterOrEqual(t, requests, int64(2))
}
