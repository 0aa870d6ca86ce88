package tui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/devbush/ytgrab/internal/domain"
)

// renderInterval throttles in-place redraws to avoid flickering
const renderInterval = 100 * time.Millisecond

// SetupDisplay prints bootstrap events. Download progress is drawn as a
// bar that is redrawn in place when the output is a terminal.
type SetupDisplay struct {
	out         io.Writer
	quiet       bool
	interactive bool
	bar         progress.Model

	mu         sync.Mutex
	live       bool // the last printed line is a progress bar
	lastRender time.Time
}

// NewSetupDisplay creates a display writing to out
func NewSetupDisplay(out io.Writer, quiet, interactive bool) *SetupDisplay {
	return &SetupDisplay{
		out:         out,
		quiet:       quiet,
		interactive: interactive,
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
}

// Handle renders one setup event
func (d *SetupDisplay) Handle(ev domain.SetupEvent) {
	if d.quiet {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch ev.Stage {
	case domain.SetupDownloading:
		if !d.interactive || ev.Percent <= 0 {
			return
		}
		if ev.Percent < 100 && time.Since(d.lastRender) < renderInterval {
			return
		}
		d.lastRender = time.Now()
		fmt.Fprintf(d.out, "\r\033[K  %s %s", d.bar.ViewAs(ev.Percent/100), ev.File)
		d.live = true
	case domain.SetupCompleted:
		d.println("✓ " + ev.Message)
	case domain.SetupFailed:
		d.println("✗ " + ev.Message)
	default:
		if ev.Message != "" {
			d.println(ev.Message)
		}
	}
}

func (d *SetupDisplay) println(line string) {
	if d.live {
		fmt.Fprintln(d.out)
		d.live = false
	}
	fmt.Fprintln(d.out, line)
}

// Spinner shows an animated status line while a blocking call runs
type Spinner struct {
	out    io.Writer
	frames []string
	done   chan struct{}
	wg     sync.WaitGroup
}

// StartSpinner starts a goroutine that redraws message with a spinner
// frame. It does nothing unless interactive is true.
func StartSpinner(out io.Writer, message string, interactive bool) *Spinner {
	s := &Spinner{out: out, frames: spinner.Dot.Frames, done: make(chan struct{})}
	if !interactive {
		close(s.done)
		return s
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(renderInterval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			fmt.Fprintf(s.out, "\r\033[K%s %s", s.frames[i%len(s.frames)], message)
			select {
			case <-s.done:
				fmt.Fprint(s.out, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()
	return s
}

// Stop clears the spinner line. It is safe to call more than once.
func (s *Spinner) Stop() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	s.wg.Wait()
}
