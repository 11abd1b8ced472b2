package resultcache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/Sumatoshi-tech/casefang/pkg/constnaming"
)

// formatVersion is mixed into every key; bump it when the entry layout changes.
const formatVersion = "casefang-result-v1"

const (
	dirPerm  = 0o755
	filePerm = 0o644
	entryExt = ".lz4"
)

// ErrNoCacheDir is returned when no cache directory is configured and the user
// cache directory cannot be determined.
var ErrNoCacheDir = errors.New("no cache directory available")

// Stats is a snapshot of cache effectiveness.
type Stats struct {
	Hits          int64
	Misses        int64
	MemoryEntries int
}

// HitRate returns hits / (hits + misses), or 0 when nothing was looked up.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// Store is a two-tier result cache: an in-memory LRU backed by files under a
// directory. It is safe for concurrent use.
type Store struct {
	dir    string
	memory *memoryTier

	hits   atomic.Int64
	misses atomic.Int64
}

// DefaultDir returns the per-user cache directory for casefang.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoCacheDir, err)
	}

	return filepath.Join(base, "casefang"), nil
}

// Open returns a Store rooted at dir, creating it if needed. An empty dir selects
// [DefaultDir].
func Open(dir string) (*Store, error) {
	if dir == "" {
		var err error

		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	return &Store{dir: dir, memory: newMemoryTier(defaultMemoryBudget)}, nil
}

// Key derives the cache key for checking content at file with the given
// options fingerprint.
func Key(fingerprint, file string, content []byte) string {
	h := sha256.New()

	for _, part := range []string{formatVersion, fingerprint, filepath.ToSlash(file)} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}

	h.Write(content)

	return hex.EncodeToString(h.Sum(nil))
}

// Dir returns the root directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

// Get returns the cached result for key. Unreadable or corrupt entries count as misses.
func (s *Store) Get(key string) (constnaming.Result, bool) {
	data, ok := s.memory.get(key)
	if !ok {
		var err error

		data, err = os.ReadFile(s.path(key))
		if err != nil {
			s.misses.Add(1)

			return constnaming.Result{}, false
		}
	}

	res, err := decode(data)
	if err != nil {
		s.misses.Add(1)

		return constnaming.Result{}, false
	}

	if !ok {
		s.memory.put(key, data)
	}

	s.hits.Add(1)

	return res, true
}

// Put stores res under key. The file is written to a temporary name and renamed
// so concurrent readers never observe partial entries.
func (s *Store) Put(key string, res constnaming.Result) error {
	data, err := encode(res)
	if err != nil {
		return err
	}

	s.memory.put(key, data)

	target := s.path(key)

	if err = os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return fmt.Errorf("create cache shard: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "tmp-*")
	if err != nil {
		return fmt.Errorf("create cache entry: %w", err)
	}

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()

	if err = errors.Join(writeErr, closeErr); err != nil {
		return errors.Join(fmt.Errorf("write cache entry: %w", err), os.Remove(tmp.Name()))
	}

	if err = os.Chmod(tmp.Name(), filePerm); err != nil {
		return errors.Join(fmt.Errorf("chmod cache entry: %w", err), os.Remove(tmp.Name()))
	}

	if err = os.Rename(tmp.Name(), target); err != nil {
		return errors.Join(fmt.Errorf("commit cache entry: %w", err), os.Remove(tmp.Name()))
	}

	return nil
}

// Stats returns a snapshot of hit and miss counters.
func (s *Store) Stats() Stats {
	return Stats{
		Hits:          s.hits.Load(),
		Misses:        s.misses.Load(),
		MemoryEntries: s.memory.len(),
	}
}

func (s *Store) path(key string) string {
	shard := key
	if len(shard) > 2 {
		shard = key[:2]
	}

	return filepath.Join(s.dir, shard, key+entryExt)
}
