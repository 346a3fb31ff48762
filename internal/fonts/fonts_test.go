package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Inter", "Inter-Regular.ttf"))
	touch(t, filepath.Join(dir, "Mono.OTF"))
	touch(t, filepath.Join(dir, "README.md"))

	got, err := ScanDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Inter/Inter-Regular.ttf", "Mono.OTF"}, got)

	got, err = ScanDir(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFind(t *testing.T) {
	empty := t.TempDir()
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Alpha.ttf"))
	touch(t, filepath.Join(dir, "open_sans", "Open-Sans-Regular.ttf"))

	p, ok := Find([]string{empty, dir}, "Open Sans")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "open_sans", "Open-Sans-Regular.ttf"), p)

	p, ok = Find([]string{dir}, "nothing like it")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "Alpha.ttf"), p)

	_, ok = Find([]string{empty}, "")
	assert.False(t, ok)
}
