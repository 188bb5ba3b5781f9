package cryptox

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrGeneratePepper_CreatesAndReuses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")

	first, err := LoadOrGeneratePepper(path)
	require.NoError(t, err)
	require.Len(t, first, 43)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := LoadOrGeneratePepper(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLoadOrGeneratePepper_TrimsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pepper")
	require.NoError(t, os.WriteFile(path, []byte("  stored-pepper\n"), 0o600))

	pepper, err := LoadOrGeneratePepper(path)
	require.NoError(t, err)
	require.Equal(t, "stored-pepper", pepper)
}

func TestLoadOrGeneratePepper_RejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pepper")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

	_, err := LoadOrGeneratePepper(path)
	require.Error(t, err)
}

func TestLoadOrGeneratePepper_ConcurrentStartup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pepper")

	const n = 8
	results := make([]string, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := LoadOrGeneratePepper(path)
			if err == nil {
				results[i] = p
			}
		}()
	}
	wg.Wait()

	// A reader can observe the file between create and write; everyone who
	// got a value must agree with what ended up on disk.
	onDisk, err := LoadOrGeneratePepper(path)
	require.NoError(t, err)
	for _, r := range results {
		if r != "" {
			require.Equal(t, onDisk, r)
		}
	}
}
