package ytdlp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/devbush/ytgrab/internal/domain"
	"github.com/devbush/ytgrab/internal/ports"
)

// fakeClient writes script as a fake yt-dlp and returns a client using it
func fakeClient(t *testing.T, script string) *Client {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}

	dir := t.TempDir()
	bin := filepath.Join(dir, "fake-yt-dlp")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatal(err)
	}

	locator := NewLocator(filepath.Join(dir, "bin"), map[domain.Tool]string{domain.ToolYtDlp: bin})
	return NewClient(locator, zerolog.Nop())
}

func collect(events *[]domain.Event) func(domain.Event) {
	return func(ev domain.Event) { *events = append(*events, ev) }
}

func TestExecutableName(t *testing.T) {
	name := ExecutableName(domain.ToolYtDlp)

	if runtime.GOOS == "windows" {
		if name != "yt-dlp.exe" {
			t.Errorf("ExecutableName() = %s, want yt-dlp.exe on Windows", name)
		}
	} else if name != "yt-dlp" {
		t.Errorf("ExecutableName() = %s, want yt-dlp", name)
	}
}

func TestLocator_Resolve(t *testing.T) {
	dir := t.TempDir()
	bundled := filepath.Join(dir, ExecutableName(domain.ToolFFmpeg))
	if err := os.WriteFile(bundled, []byte("x"), 0755); err != nil {
		t.Fatal(err)
	}

	l := NewLocator(dir, map[domain.Tool]string{domain.ToolFFmpeg: filepath.Join(dir, "missing")})
	l.lookPath = func(string) (string, error) { return "", errors.New("not found") }
	l.homeDir = func() (string, error) { return t.TempDir(), nil }

	got := l.Resolve(domain.ToolFFmpeg)
	if got.Path != bundled || !got.Bundled {
		t.Errorf("Resolve(ffmpeg) = %+v, want bundled %s", got, bundled)
	}

	if got := l.Resolve(domain.ToolYtDlp); got.Available() {
		t.Errorf("Resolve(yt-dlp) = %+v, want unavailable", got)
	}

	l.lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	if got := l.Resolve(domain.ToolYtDlp); got.Path != "/usr/bin/"+ExecutableName(domain.ToolYtDlp) || got.Bundled {
		t.Errorf("Resolve(yt-dlp) via PATH = %+v", got)
	}
}

func TestClient_Download(t *testing.T) {
	out := t.TempDir()
	client := fakeClient(t, `
echo "[youtube] abc: Downloading webpage"
echo "[download] Destination: `+out+`/Song.webm"
echo "[download]  10.0% of ~  10.00MiB at    1.00MiB/s ETA 00:09"
echo "[download]  55.5% of ~  10.00MiB at    2.00MiB/s ETA 00:02"
echo "[download] 100% of   10.00MiB in 00:00:05 at 2.00MiB/s"
echo "[ExtractAudio] Destination: `+out+`/Song.mp3"
echo "[Metadata] Adding metadata to \"`+out+`/Song.mp3\""
echo "[EmbedThumbnail] ffmpeg: Adding thumbnail"
echo "[Metadata] again"
exit 0
`)

	var events []domain.Event
	req := ports.DownloadRequest{
		JobID:     "job-1",
		Entry:     domain.MediaEntry{ID: "abc", Title: "Song", URL: "https://www.youtube.com/watch?v=abc"},
		Format:    domain.FormatMP3,
		OutputDir: out,
	}

	res, err := client.Download(context.Background(), req, collect(&events))
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if want := filepath.Join(out, "Song.mp3"); res.OutputPath != want {
		t.Errorf("OutputPath = %s, want %s", res.OutputPath, want)
	}

	var progress, converting int
	for _, ev := range events {
		if ev.JobID != "job-1" {
			t.Errorf("event %v has JobID %q", ev.Kind, ev.JobID)
		}
		switch ev.Kind {
		case domain.EventProgress:
			progress++
		case domain.EventConverting:
			converting++
		}
	}
	if events[0].Kind != domain.EventStarting {
		t.Errorf("first event = %v, want starting", events[0].Kind)
	}
	if last := events[len(events)-1]; last.Kind != domain.EventCompleted {
		t.Errorf("last event = %v, want completed", last.Kind)
	}
	if progress != 3 {
		t.Errorf("progress events = %d, want 3", progress)
	}
	if converting != 3 {
		t.Errorf("converting events = %d, want one per stage (3)", converting)
	}
}

func TestClient_DownloadFailure(t *testing.T) {
	client := fakeClient(t, `
echo "ERROR: [youtube] abc: Private video" >&2
exit 1
`)

	var events []domain.Event
	req := ports.DownloadRequest{JobID: "j", Entry: domain.MediaEntry{ID: "abc", URL: "u"}, Format: domain.FormatMP4, OutputDir: t.TempDir()}

	_, err := client.Download(context.Background(), req, collect(&events))
	if !errors.Is(err, domain.ErrVideoUnavailable) {
		t.Fatalf("Download() error = %v, want ErrVideoUnavailable", err)
	}
	if last := events[len(events)-1]; last.Kind != domain.EventFailed {
		t.Errorf("last event = %v, want failed", last.Kind)
	}
}

func TestClient_DownloadCancel(t *testing.T) {
	client := fakeClient(t, `
echo "[download]   1.0% of ~  10.00MiB at    1.00MiB/s ETA 00:10"
exec sleep 30
`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var events []domain.Event
	emit := func(ev domain.Event) {
		events = append(events, ev)
		if ev.Kind == domain.EventProgress {
			cancel()
		}
	}

	req := ports.DownloadRequest{JobID: "j", Entry: domain.MediaEntry{ID: "abc", URL: "u"}, Format: domain.FormatMP3, OutputDir: t.TempDir()}
	_, err := client.Download(ctx, req, emit)

	if !errors.Is(err, domain.ErrStopped) {
		t.Fatalf("Download() error = %v, want ErrStopped", err)
	}
	last := events[len(events)-1]
	if last.Kind != domain.EventStopped {
		t.Errorf("last event = %v, want stopped", last.Kind)
	}
	for _, ev := range events {
		if ev.Kind == domain.EventFailed {
			t.Error("cancellation must not emit a failed event")
		}
	}
}

func TestClient_DownloadCancelStopsChildren(t *testing.T) {
	client := fakeClient(t, `
echo "[download]   1.0% of ~  10.00MiB at    1.00MiB/s ETA 00:10"
sleep 30 &
wait
`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	emit := func(ev domain.Event) {
		if ev.Kind == domain.EventProgress {
			cancel()
		}
	}

	req := ports.DownloadRequest{JobID: "j", Entry: domain.MediaEntry{ID: "abc", URL: "u"}, Format: domain.FormatMP3, OutputDir: t.TempDir()}
	start := time.Now()
	_, err := client.Download(ctx, req, emit)
	elapsed := time.Since(start)

	if !errors.Is(err, domain.ErrStopped) {
		t.Fatalf("Download() error = %v, want ErrStopped", err)
	}
	// a surviving child would hold stdout open until waitDelay expires
	if elapsed >= waitDelay/2 {
		t.Errorf("Download() returned after %v, want well under %v", elapsed, waitDelay)
	}
}

func TestClient_Probe(t *testing.T) {
	client := fakeClient(t, `echo '{"id":"v1","title":"Clip","webpage_url":"https://www.youtube.com/watch?v=v1"}'`)

	info, err := client.Probe(context.Background(), "https://youtu.be/v1")
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if len(info.Entries) != 1 || info.Entries[0].ID != "v1" {
		t.Errorf("Probe() = %+v", info)
	}
}

func TestClient_Update(t *testing.T) {
	client := fakeClient(t, `
echo "Current version: stable@2025.01.01"
echo "yt-dlp is up to date (stable@2025.01.01)"
`)

	msg, err := client.Update(context.Background())
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if msg != "yt-dlp is up to date (stable@2025.01.01)" {
		t.Errorf("Update() = %q", msg)
	}
}

func TestClient_MissingBinary(t *testing.T) {
	l := NewLocator(t.TempDir(), nil)
	l.lookPath = func(string) (string, error) { return "", errors.New("not found") }
	l.homeDir = func() (string, error) { return t.TempDir(), nil }
	client := NewClient(l, zerolog.Nop())

	if _, err := client.Probe(context.Background(), "u"); !errors.Is(err, domain.ErrYtDlpNotFound) {
		t.Errorf("Probe() error = %v, want ErrYtDlpNotFound", err)
	}
}
