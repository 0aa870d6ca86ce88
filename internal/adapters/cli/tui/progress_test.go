package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/devbush/ytgrab/internal/domain"
)

func TestSetupDisplay_PlainOutput(t *testing.T) {
	var out bytes.Buffer
	d := NewSetupDisplay(&out, false, false)

	d.Handle(domain.SetupEvent{Stage: domain.SetupStarting, Message: "Downloading yt-dlp..."})
	d.Handle(domain.SetupEvent{Stage: domain.SetupDownloading, File: "yt-dlp", Percent: 50})
	d.Handle(domain.SetupEvent{Stage: domain.SetupCompleted, Message: "Ready"})

	want := "Downloading yt-dlp...\n✓ Ready\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestSetupDisplay_BarEndsBeforeNextMessage(t *testing.T) {
	var out bytes.Buffer
	d := NewSetupDisplay(&out, false, true)

	d.Handle(domain.SetupEvent{Stage: domain.SetupDownloading, File: "ffmpeg", Percent: 100})
	d.Handle(domain.SetupEvent{Stage: domain.SetupFailed, Message: "ffmpeg install failed", Err: errors.New("boom")})

	got := out.String()
	if !strings.Contains(got, "ffmpeg\n✗ ffmpeg install failed\n") {
		t.Errorf("output = %q, want bar line terminated before failure", got)
	}
}

func TestSetupDisplay_Quiet(t *testing.T) {
	var out bytes.Buffer
	d := NewSetupDisplay(&out, true, true)

	d.Handle(domain.SetupEvent{Stage: domain.SetupCompleted, Message: "Ready"})

	if out.Len() != 0 {
		t.Errorf("quiet display wrote %q", out.String())
	}
}

func TestSpinner_NonInteractive(t *testing.T) {
	var out bytes.Buffer
	s := StartSpinner(&out, "Analyzing URL...", false)
	s.Stop()
	s.Stop()

	if out.Len() != 0 {
		t.Errorf("non-interactive spinner wrote %q", out.String())
	}
}
