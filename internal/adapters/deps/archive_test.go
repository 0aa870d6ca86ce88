package deps

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMember_Zip(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := zipBytes(t,
		archiveEntry{"ffmpeg-master-latest-win64-gpl/bin/ffprobe.exe", "probe"},
		archiveEntry{"ffmpeg-master-latest-win64-gpl/bin/ffmpeg.exe", "binary"},
	)
	require.NoError(t, afero.WriteFile(fs, "/bin/ffmpeg.zip", data, 0644))

	err := extractMember(fs, "/bin/ffmpeg.zip", ArchiveZip, "ffmpeg.exe", "/bin/ffmpeg.exe")
	require.NoError(t, err)

	got, err := afero.ReadFile(fs, "/bin/ffmpeg.exe")
	require.NoError(t, err)
	assert.Equal(t, "binary", string(got))
}

func TestExtractMember_TarXz(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := tarXzBytes(t,
		archiveEntry{"ffmpeg-master-latest-linux64-gpl/LICENSE.txt", "gpl"},
		archiveEntry{"ffmpeg-master-latest-linux64-gpl/bin/ffmpeg", "elf"},
	)
	require.NoError(t, afero.WriteFile(fs, "/bin/ffmpeg.tar.xz", data, 0644))

	err := extractMember(fs, "/bin/ffmpeg.tar.xz", ArchiveTarXz, "ffmpeg", "/bin/ffmpeg")
	require.NoError(t, err)

	got, err := afero.ReadFile(fs, "/bin/ffmpeg")
	require.NoError(t, err)
	assert.Equal(t, "elf", string(got))

	if runtime.GOOS != "windows" {
		info, err := fs.Stat("/bin/ffmpeg")
		require.NoError(t, err)
		assert.Equal(t, "-rwxr-xr-x", info.Mode().Perm().String())
	}
}

func TestExtractMember_Missing(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.zip", zipBytes(t, archiveEntry{"readme.txt", "x"}), 0644))

	err := extractMember(fs, "/a.zip", ArchiveZip, "ffmpeg", "/ffmpeg")
	assert.True(t, errors.Is(err, errMemberNotFound), "got %v", err)

	exists, _ := afero.Exists(fs, "/ffmpeg")
	assert.False(t, exists)
}

func TestMemberMatches(t *testing.T) {
	assert.True(t, memberMatches(`ffmpeg-7.1-essentials_build\bin\ffmpeg.exe`, "ffmpeg.exe"))
	assert.True(t, memberMatches("ffmpeg", "ffmpeg"))
	assert.False(t, memberMatches("__MACOSX/._ffmpeg", "ffmpeg"))
}

func TestExtractMember_7z(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "ffmpeg.7z"))
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/bin/ffmpeg.7z", data, 0644))

		err := extractMember(fs, "/bin/ffmpeg.7z", Archive7z, "ffmpeg.exe", "/bin/ffmpeg.exe")
		require.NoError(t, err)

		got, err := afero.ReadFile(fs, "/bin/ffmpeg.exe")
		require.NoError(t, err)
		assert.Equal(t, "essentials", string(got))
	})

	t.Run("missing", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/bin/ffmpeg.7z", data, 0644))

		err := extractMember(fs, "/bin/ffmpeg.7z", Archive7z, "ffprobe.exe", "/bin/ffprobe.exe")
		assert.True(t, errors.Is(err, errMemberNotFound), "got %v", err)

		exists, _ := afero.Exists(fs, "/bin/ffprobe.exe")
		assert.False(t, exists)
	})
}
