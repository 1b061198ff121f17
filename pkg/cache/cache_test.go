package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oomol-lab/wsl-get/pkg/cache"
	"github.com/oomol-lab/wsl-get/pkg/distro"
	"github.com/oomol-lab/wsl-get/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestNewCreatesLayout(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "cache")

	d, err := cache.New(root)
	require.NoError(t, err)
	require.Equal(t, root, d.Root())
	require.DirExists(t, filepath.Join(root, "rootfs"))
	require.Equal(t, filepath.Join(root, "logs"), cache.LogDir(d.Root()))
}

func TestResolveDoesNotCreate(t *testing.T) {
	root := filepath.Join(t.TempDir(), "absent")

	p, err := cache.Resolve(root)
	require.NoError(t, err)
	require.Equal(t, root, p)
	require.NoDirExists(t, root)

	p, err = cache.Resolve("")
	require.NoError(t, err)
	require.NotEmpty(t, p, "the per-user cache path should resolve")
}

func TestNewFailsOnFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, nil, 0600))

	_, err := cache.New(root)
	require.ErrorIs(t, err, types.ErrIOFailed)
}

func TestPathIsDeterministic(t *testing.T) {
	d, err := cache.New(t.TempDir())
	require.NoError(t, err)

	untagged := distro.Reference{Name: "ubuntu"}
	require.Equal(t, d.Path(untagged), d.Path(distro.Reference{Name: "ubuntu"}))
	require.Equal(t, filepath.Join(d.Root(), "rootfs", "ubuntu-latest.tar.gz"), d.Path(untagged))
	require.NotEqual(t, d.Path(untagged), d.Path(distro.Reference{Name: "ubuntu", Tag: "20.04"}))
	require.Equal(t, filepath.Join(d.Root(), "rootfs", "library-debian-12.tar.gz"), d.Path(distro.Reference{Name: "library/debian", Tag: "12"}))
}

func TestRemove(t *testing.T) {
	d, err := cache.New(t.TempDir())
	require.NoError(t, err)

	ref := distro.Reference{Name: "alpine", Tag: "3.20"}
	require.False(t, d.Exists(ref))
	require.NoError(t, d.Remove(ref), "removing an absent tarball is a no-op")

	require.NoError(t, os.WriteFile(d.Path(ref), []byte("tar"), 0600))
	require.True(t, d.Exists(ref))

	require.NoError(t, d.Remove(ref))
	require.False(t, d.Exists(ref))
}

func TestInstallDir(t *testing.T) {
	d, err := cache.New(t.TempDir())
	require.NoError(t, err)

	p, err := d.InstallDir("ubuntu-2")
	require.NoError(t, err)
	require.DirExists(t, p)
	require.Equal(t, filepath.Join(d.Root(), "distros", "ubuntu-2"), p)

	require.NoError(t, d.RemoveInstallDir("ubuntu-2"))
	require.NoDirExists(t, p)
	require.NoError(t, d.RemoveInstallDir("ubuntu-2"), "a missing directory is not an error")

	p, err = d.InstallDir("debian")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(p, "ext4.vhdx"), []byte("disk"), 0600))
	require.ErrorIs(t, d.RemoveInstallDir("debian"), types.ErrIOFailed)
	require.FileExists(t, filepath.Join(p, "ext4.vhdx"), "a populated directory must be kept")
}

func TestFreeSpace(t *testing.T) {
	free, err := cache.FreeSpace(t.TempDir())
	require.NoError(t, err)
	require.NotZero(t, free, "a writable temp dir should have free space")

	_, err = cache.FreeSpace(filepath.Join(t.TempDir(), "absent"))
	require.ErrorIs(t, err, types.ErrIOFailed)
}
