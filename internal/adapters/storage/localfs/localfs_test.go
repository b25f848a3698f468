package localfs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAndDelete(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	obj, err := s.Put([]byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(obj.Key, ".png"))
	assert.Equal(t, "/uploads/"+obj.Key, obj.URL)

	data, err := os.ReadFile(filepath.Join(dir, obj.Key))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	require.NoError(t, s.Delete(obj.Key))
	_, err = os.Stat(filepath.Join(dir, obj.Key))
	assert.True(t, os.IsNotExist(err))

	// Deleting a missing key is not an error.
	assert.NoError(t, s.Delete(obj.Key))
}

func TestPutUnknownContentType(t *testing.T) {
	s := New(t.TempDir())
	obj, err := s.Put([]byte{0x1, 0x2}, "application/x-something")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(obj.Key, ".bin"))
}
