package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirectories(t *testing.T) {
	tmp := t.TempDir()
	dsn := filepath.Join(tmp, "state", "client", "blogit.db")

	require.NoError(t, EnsureParentDir(dsn))

	fi, err := os.Stat(filepath.Dir(dsn))
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "data", "blogit.db")

	require.NoError(t, EnsureParentDir(dsn))
	require.NoError(t, EnsureParentDir(dsn))
}

func TestEnsureParentDir_SkipsSpecialDSNs(t *testing.T) {
	for _, dsn := range []string{"", ":memory:", "file:test.db?mode=memory", "blogit.db"} {
		require.NoError(t, EnsureParentDir(dsn), dsn)
	}
}

func TestEnsureParentDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "data")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o660))

	require.Error(t, EnsureParentDir(filepath.Join(blocker, "blogit.db")))
}
