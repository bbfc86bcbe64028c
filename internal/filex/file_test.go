package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirDeliverer_WritesFile(t *testing.T) {
	dir := t.TempDir()
	d := &DirDeliverer{Dir: dir}

	require.NoError(t, d.Deliver("report.pdf", []byte("data")))

	b, err := os.ReadFile(filepath.Join(dir, "report.pdf"))
	require.NoError(t, err)
	require.Equal(t, []byte("data"), b)
}

func TestDirDeliverer_SanitizesPath(t *testing.T) {
	dir := t.TempDir()
	d := &DirDeliverer{Dir: dir}

	require.NoError(t, d.Deliver("../../evil.sh", []byte("x")))

	_, err := os.Stat(filepath.Join(dir, "evil.sh"))
	require.NoError(t, err)
}

func TestDirDeliverer_EmptyName(t *testing.T) {
	dir := t.TempDir()
	d := &DirDeliverer{Dir: dir}

	require.NoError(t, d.Deliver("", []byte("x")))

	_, err := os.Stat(filepath.Join(dir, "attachment"))
	require.NoError(t, err)
}

func TestEnsureSubDir(t *testing.T) {
	tmp := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	dir, err := EnsureSubDir("downloads")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
