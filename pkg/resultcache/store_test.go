package resultcache_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/casefang/pkg/constnaming"
	"github.com/Sumatoshi-tech/casefang/pkg/resultcache"
	"github.com/Sumatoshi-tech/casefang/pkg/sourcelang"
)

func sampleResult() constnaming.Result {
	return constnaming.Result{
		File:      "src/config.ts",
		Language:  sourcelang.TypeScript,
		Constants: 2,
		Diagnostics: []constnaming.Diagnostic{{
			File:      "src/config.ts",
			Rule:      constnaming.RuleName,
			Name:      "maxRetries",
			Expected:  "MAX_RETRIES",
			Message:   "Constant maxRetries should be styled as MAX_RETRIES",
			Start:     constnaming.Position{Line: 1, Column: 7},
			End:       constnaming.Position{Line: 1, Column: 17},
			StartByte: 6,
			EndByte:   16,
			Fix:       &constnaming.Fix{Start: 6, End: 16, Replacement: "MAX_RETRIES"},
		}},
	}
}

func TestStore_PutGet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	store, err := resultcache.Open(dir)
	require.NoError(t, err)

	key := resultcache.Key("fp", "src/config.ts", []byte("const maxRetries = 3;"))

	_, ok := store.Get(key)
	assert.False(t, ok)

	require.NoError(t, store.Put(key, sampleResult()))

	got, ok := store.Get(key)
	require.True(t, ok)
	assert.Equal(t, sampleResult(), got)

	assert.FileExists(t, filepath.Join(dir, key[:2], key+".lz4"))

	stats := store.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRate(), 1e-9)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key := resultcache.Key("fp", "a.js", []byte("const a = 1;"))

	first, err := resultcache.Open(dir)
	require.NoError(t, err)
	require.NoError(t, first.Put(key, sampleResult()))

	second, err := resultcache.Open(dir)
	require.NoError(t, err)

	got, ok := second.Get(key)
	require.True(t, ok)
	assert.Equal(t, "MAX_RETRIES", got.Diagnostics[0].Expected)
	assert.Equal(t, 1, second.Stats().MemoryEntries)
}

func TestStore_CorruptEntryIsMiss(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key := resultcache.Key("fp", "a.js", []byte("x"))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, key[:2]), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, key[:2], key+".lz4"), []byte{0xff, 0xff, 0xff, 0x0f, 1, 2}, 0o644))

	store, err := resultcache.Open(dir)
	require.NoError(t, err)

	_, ok := store.Get(key)
	assert.False(t, ok)
	assert.Equal(t, int64(1), store.Stats().Misses)
}

func TestKey(t *testing.T) {
	t.Parallel()

	base := resultcache.Key("fp", "a.js", []byte("const a = 1;"))

	assert.Len(t, base, 64)
	assert.Equal(t, base, resultcache.Key("fp", "a.js", []byte("const a = 1;")))
	assert.NotEqual(t, base, resultcache.Key("fp2", "a.js", []byte("const a = 1;")))
	assert.NotEqual(t, base, resultcache.Key("fp", "b.js", []byte("const a = 1;")))
	assert.NotEqual(t, base, resultcache.Key("fp", "a.js", []byte("const a = 2;")))
}

func TestStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	store, err := resultcache.Open(t.TempDir())
	require.NoError(t, err)

	key := resultcache.Key("fp", "a.js", []byte("shared"))

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			assert.NoError(t, store.Put(key, sampleResult()))
			store.Get(key)
		}()
	}

	wg.Wait()

	got, ok := store.Get(key)
	require.True(t, ok)
	assert.Equal(t, 2, got.Constants)
}
