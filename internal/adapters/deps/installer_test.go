package deps

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/devbush/ytgrab/internal/adapters/ytdlp"
	"github.com/devbush/ytgrab/internal/domain"
	"github.com/devbush/ytgrab/internal/ports"
)

const binDir = "/data/ytgrab/bin"

func newTestInstaller(fs afero.Fs, assets map[domain.Tool]Asset) *Installer {
	client := ytdlp.NewClient(ytdlp.NewLocator(binDir, nil), zerolog.Nop())
	inst := NewInstaller(fs, client, zerolog.Nop())
	inst.fetcher = newTestFetcher(fs)
	inst.assets = func(tool domain.Tool) (Asset, error) {
		a, ok := assets[tool]
		if !ok {
			return Asset{}, domain.ErrUnsupportedPlatform
		}
		return a, nil
	}
	return inst
}

func TestInstaller_InstallBinaryWithChecksum(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	binary := []byte("#!/usr/bin/env python3\n")
	mux := http.NewServeMux()
	mux.HandleFunc("/yt-dlp", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write(binary) })
	mux.HandleFunc("/SHA2-256SUMS", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "%s  yt-dlp\n%s  yt-dlp.exe\n", sha256Hex(binary), sha256Hex([]byte("other")))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	fs := afero.NewMemMapFs()
	inst := newTestInstaller(fs, map[domain.Tool]Asset{
		domain.ToolYtDlp: {Tool: domain.ToolYtDlp, Sources: []Source{{
			URL:         srv.URL + "/yt-dlp",
			ChecksumURL: srv.URL + "/SHA2-256SUMS",
			FileName:    "yt-dlp",
		}}},
	})
	defer inst.Close()

	var downloading []string
	err := inst.Install(context.Background(), domain.ToolYtDlp, ports.InstallHooks{
		Downloading: func(file string) { downloading = append(downloading, file) },
	})
	require.NoError(t, err)

	dest := filepath.Join(binDir, ytdlp.ExecutableName(domain.ToolYtDlp))
	got, err := afero.ReadFile(fs, dest)
	require.NoError(t, err)
	assert.Equal(t, binary, got)
	assert.Contains(t, downloading, "yt-dlp")

	leftover, _ := afero.Exists(fs, dest+".download")
	assert.False(t, leftover)
}

func TestInstaller_ChecksumMismatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/yt-dlp", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("tampered")) })
	mux.HandleFunc("/SHA2-256SUMS", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "%s  yt-dlp\n", sha256Hex([]byte("original")))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	fs := afero.NewMemMapFs()
	inst := newTestInstaller(fs, map[domain.Tool]Asset{
		domain.ToolYtDlp: {Tool: domain.ToolYtDlp, Sources: []Source{{
			URL:         srv.URL + "/yt-dlp",
			ChecksumURL: srv.URL + "/SHA2-256SUMS",
			FileName:    "yt-dlp",
		}}},
	})
	defer inst.Close()

	err := inst.Install(context.Background(), domain.ToolYtDlp, ports.InstallHooks{})
	assert.True(t, errors.Is(err, domain.ErrChecksumMismatch), "got %v", err)

	entries, err := afero.ReadDir(fs, binDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInstaller_FallsBackToMirror(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("archive fixture carries the unix binary name")
	}
	archive := tarXzBytes(t, archiveEntry{"ffmpeg-build/bin/ffmpeg", "ffmpeg-binary"})

	mux := http.NewServeMux()
	mux.HandleFunc("/primary.zip", func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) })
	mux.HandleFunc("/mirror.tar.xz", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write(archive) })
	srv := httptest.NewServer(mux)
	defer srv.Close()

	fs := afero.NewMemMapFs()
	inst := newTestInstaller(fs, map[domain.Tool]Asset{
		domain.ToolFFmpeg: {Tool: domain.ToolFFmpeg, Sources: []Source{
			{URL: srv.URL + "/primary.zip", Archive: ArchiveZip},
			{URL: srv.URL + "/mirror.tar.xz", Archive: ArchiveTarXz},
		}},
	})
	defer inst.Close()

	var extracted string
	err := inst.Install(context.Background(), domain.ToolFFmpeg, ports.InstallHooks{
		Extracting: func(file string) { extracted = file },
	})
	require.NoError(t, err)
	assert.Equal(t, "ffmpeg", extracted)

	got, err := afero.ReadFile(fs, filepath.Join(binDir, "ffmpeg"))
	require.NoError(t, err)
	assert.Equal(t, "ffmpeg-binary", string(got))
}

func TestInstaller_AllSourcesFail(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	inst := newTestInstaller(afero.NewMemMapFs(), map[domain.Tool]Asset{
		domain.ToolFFmpeg: {Tool: domain.ToolFFmpeg, Sources: []Source{
			{URL: srv.URL + "/a.zip", Archive: ArchiveZip},
			{URL: srv.URL + "/b.7z", Archive: Archive7z},
		}},
	})
	defer inst.Close()

	err := inst.Install(context.Background(), domain.ToolFFmpeg, ports.InstallHooks{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.zip")
	assert.Contains(t, err.Error(), "b.7z")
}

func TestInstaller_UnsupportedPlatform(t *testing.T) {
	inst := newTestInstaller(afero.NewMemMapFs(), nil)
	defer inst.Close()

	err := inst.Install(context.Background(), domain.ToolYtDlp, ports.InstallHooks{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}
