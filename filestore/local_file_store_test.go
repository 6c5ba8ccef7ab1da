package filestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocalFileStoreRoundTrip(t *testing.T) {
	store, err := NewLocalFileStore("testbucket", "http://localhost:8080/")
	require.NoError(t, err)
	defer store.CleanUp()

	key := KeyForUpload("user-1", "notes.pdf")
	require.True(t, strings.HasPrefix(key, "user-1/"))
	require.True(t, strings.HasSuffix(key, ".pdf"))

	require.NoError(t, store.Store(key, strings.NewReader("hello"), "application/pdf"))

	data, err := os.ReadFile(filepath.Join(store.FolderName(), filepath.FromSlash(key)))
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))

	require.Equal(t, "http://localhost:8080/files/"+key, store.PublicUrl(key))

	signed, err := store.SignedUrl(key, time.Hour)
	require.NoError(t, err)
	require.Contains(t, signed, "expires=")
}
