package pattern

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const customProfileYAML = `name: Custom
version: "1.0.0"
jurisdiction: KE
profile_id: custom
detection:
  required_indicators:
    - pattern: 'CUSTOM'
      weight: 5
layout: numbered
`

func writeProfile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register(testProfile()))
	assert.Equal(t, 1, r.Count())

	require.ErrorIs(t, r.Register(nil), ErrInvalidProfile)
	require.Error(t, r.Register(testProfile()), "same version twice")

	next := testProfile()
	next.Version = "2.0.0"
	require.NoError(t, r.Register(next))
	p, ok := r.Get("test")
	require.True(t, ok)
	assert.Equal(t, "2.0.0", p.Version)

	invalid := testProfile()
	invalid.Detection.RequiredIndicators[0].Pattern = `(`
	invalid.ProfileID = "broken"
	require.ErrorIs(t, r.Register(invalid), ErrInvalidProfile)

	require.NoError(t, r.Unregister("test"))
	require.ErrorIs(t, r.Unregister("test"), ErrProfileNotFound)
	assert.Zero(t, r.Count())
}

func TestRegistryListOrder(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	for _, id := range []string{"zeta", "alpha", "mid"} {
		p := testProfile()
		p.ProfileID = id
		p.Jurisdiction = "KE"
		require.NoError(t, r.Register(p))
	}

	var ids []string
	for _, p := range r.List() {
		ids = append(ids, p.ProfileID)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, ids)
	assert.Len(t, r.ListByJurisdiction("ke"), 3)
	assert.Empty(t, r.ListByJurisdiction("UG"))
}

func TestRegistryLoadDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeProfile(t, dir, "custom.yaml", customProfileYAML)
	writeProfile(t, dir, "notes.txt", "not a profile")

	r := NewRegistry()
	require.NoError(t, r.LoadDirectory(dir))
	assert.Equal(t, 1, r.Count())

	p, ok := r.Get("custom")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "custom.yaml"), p.Source())

	writeProfile(t, dir, "broken.yml", "name: [")
	err := r.Reload()
	require.ErrorIs(t, err, ErrInvalidProfile)
	assert.Contains(t, err.Error(), "broken.yml")
	_, ok = r.Get("custom")
	assert.True(t, ok)

	require.NoError(t, NewRegistry().LoadDirectory(filepath.Join(dir, "missing")))
	require.Error(t, NewRegistry().LoadDirectory(filepath.Join(dir, "custom.yaml")))
	require.Error(t, NewRegistry().Reload())
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	r, err := NewDefaultRegistry()
	require.NoError(t, err)

	p, err := r.Resolve(DefaultProfileID)
	require.NoError(t, err)
	assert.Equal(t, DefaultProfileID, p.ProfileID)

	path := writeProfile(t, t.TempDir(), "custom.yaml", customProfileYAML)
	p, err = r.Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", p.ProfileID)

	_, err = r.Resolve("unknown")
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestRegistryWatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := NewRegistry()
	require.NoError(t, r.LoadDirectory(dir))

	var mu sync.Mutex
	var events []string
	r.SetOnChange(func(event string, _ *Profile) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, event)
	})

	require.NoError(t, r.Watch())
	t.Cleanup(r.StopWatch)

	path := writeProfile(t, dir, "custom.yaml", customProfileYAML)
	require.Eventually(t, func() bool {
		_, ok := r.Get("custom")
		return ok
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Remove(path))
	require.Eventually(t, func() bool {
		_, ok := r.Get("custom")
		return !ok
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, events, "remove")
}

func TestRegistryWatchWithoutDirectory(t *testing.T) {
	t.Parallel()

	require.Error(t, NewRegistry().Watch())
}

func TestRegistrySetOnChangeWhileWatching(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := NewRegistry()
	require.NoError(t, r.LoadDirectory(dir))
	require.NoError(t, r.Watch())
	t.Cleanup(r.StopWatch)

	var (
		wg    sync.WaitGroup
		calls atomic.Int32
	)
	wg.Go(func() {
		for range 50 {
			r.SetOnChange(func(string, *Profile) { calls.Add(1) })
		}
	})
	for i := range 5 {
		writeProfile(t, dir, "custom.yaml", strings.Replace(customProfileYAML, `"1.0.0"`, fmt.Sprintf(`"1.0.%d"`, i+1), 1))
	}
	wg.Wait()
	writeProfile(t, dir, "custom.yaml", strings.Replace(customProfileYAML, `"1.0.0"`, `"2.0.0"`, 1))

	require.Eventually(t, func() bool {
		p, ok := r.Get("custom")
		return ok && p.Version == "2.0.0" && calls.Load() > 0
	}, 5*time.Second, 20*time.Millisecond)
}
