package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	customErrors "github.com/skylume/user-service/internal/domain/user/errors"
)

func newStore(t *testing.T) (*DiskStore, string) {
	t.Helper()
	root := t.TempDir()
	s, err := NewDiskStore(root)
	require.NoError(t, err)
	return s, root
}

func TestDiskStore_SaveAndRemove(t *testing.T) {
	s, root := newStore(t)

	payload := bytes.Repeat([]byte{0xAB}, 1<<20) // 1 MiB
	rel, err := s.Save("avatar.JPG", int64(len(payload)), bytes.NewReader(payload))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(rel, "profile_pic/"))
	require.True(t, strings.HasSuffix(rel, ".jpg"))

	onDisk, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	require.Equal(t, payload, onDisk)

	require.NoError(t, s.Remove(rel))
	_, err = os.Stat(filepath.Join(root, rel))
	require.True(t, os.IsNotExist(err))
}

func TestDiskStore_RejectsExtension(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Save("anim.gif", 10, bytes.NewReader([]byte("0123456789")))
	require.True(t, customErrors.IsInvalidArgument(err))
}

func TestDiskStore_RejectsOversize(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Save("big.png", 3<<20, bytes.NewReader(nil))
	require.True(t, customErrors.IsInvalidArgument(err))
}

func TestDiskStore_UniqueNames(t *testing.T) {
	s, _ := newStore(t)

	a, err := s.Save("x.png", 1, bytes.NewReader([]byte{1}))
	require.NoError(t, err)
	b, err := s.Save("x.png", 1, bytes.NewReader([]byte{1}))
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestDiskStore_RemoveMissing(t *testing.T) {
	s, _ := newStore(t)

	require.Error(t, s.Remove("profile_pic/nope.png"))
	require.NoError(t, s.Remove(""))
}
