package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveAllowedExtension(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir(), 1024)
	require.NoError(t, err)

	ref, err := store.Save("Férias em Recife.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(ref, ".png"))

	data, err := os.ReadFile(filepath.Join(store.Dir(), ref))
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(data))
}

func TestSaveRejectsUnsupportedExtension(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir(), 1024)
	require.NoError(t, err)

	_, err = store.Save("payload.exe", strings.NewReader("boom"))
	require.ErrorIs(t, err, ErrUnsupportedType)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	require.Empty(t, entries, "rejected uploads leave no file behind")
}

func TestSaveRejectsOversizeUpload(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir(), 8)
	require.NoError(t, err)

	_, err = store.Save("big.jpg", strings.NewReader("way more than eight bytes"))
	require.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	require.Empty(t, entries, "oversize uploads are cleaned up")
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir(), 1024)
	require.NoError(t, err)

	first, err := store.Save("a.jpg", strings.NewReader("one"))
	require.NoError(t, err)
	second, err := store.Save("a.jpg", strings.NewReader("two"))
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
