package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/devbush/ytgrab/internal/domain"
	"github.com/devbush/ytgrab/internal/i18n"
)

// renderProgressBar draws a text bar like [=====>    ]. The arrow marks the
// head of the progress and disappears once current reaches total.
func renderProgressBar(current, total, width int) string {
	switch {
	case total <= 0 || current <= 0:
		return "[" + strings.Repeat(" ", width) + "]"
	case current >= total:
		return "[" + strings.Repeat("=", width) + "]"
	}

	ratio := float64(current) / float64(total)
	head := max(1, min(int(ratio*float64(width)+0.5), width))

	// past the halfway mark the arrow sits after the filled cells
	equals := head - 1
	if ratio >= 0.5 {
		equals = head
	}
	equals = max(0, min(equals, width-1))

	return "[" + strings.Repeat("=", equals) + ">" + strings.Repeat(" ", width-equals-1) + "]"
}

// maxJobLines caps how many job rows are drawn at once
const maxJobLines = 10

// Messages looks up translated user-facing strings
type Messages interface {
	T(key string, args ...any) string
}

var statusKeys = map[domain.JobStatus]string{
	domain.JobPending:     i18n.StatusPending,
	domain.JobStarting:    i18n.StatusStarting,
	domain.JobDownloading: i18n.StatusDownloading,
	domain.JobConverting:  i18n.StatusConverting,
	domain.JobCompleted:   i18n.StatusCompleted,
	domain.JobFailed:      i18n.StatusFailed,
	domain.JobStopped:     i18n.StatusStopped,
	domain.JobSkipped:     i18n.StatusSkipped,
}

func statusIcon(s domain.JobStatus) string {
	if s.IsActive() {
		return ">"
	}
	switch s {
	case domain.JobCompleted:
		return "✓"
	case domain.JobFailed:
		return "✗"
	case domain.JobStopped:
		return "■"
	case domain.JobSkipped:
		return "-"
	}
	return " "
}

// QueueProgress shows the state of every job in a download queue
type QueueProgress struct {
	out         io.Writer
	msg         Messages
	quiet       bool
	interactive bool
	bar         progress.Model

	mu         sync.Mutex
	jobs       []domain.Job
	byID       map[string]int
	lines      int
	lastRender time.Time
}

// NewQueueProgress creates a display for jobs. When interactive is false
// only status changes are printed, one line each.
func NewQueueProgress(out io.Writer, jobs []*domain.Job, msg Messages, quiet, interactive bool) *QueueProgress {
	qp := &QueueProgress{
		out:         out,
		msg:         msg,
		quiet:       quiet,
		interactive: interactive,
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(20), progress.WithoutPercentage()),
		jobs:        make([]domain.Job, len(jobs)),
		byID:        make(map[string]int, len(jobs)),
	}
	for i, j := range jobs {
		qp.jobs[i] = *j
		qp.byID[j.ID] = i
	}
	return qp
}

// Update records a job snapshot and redraws
func (qp *QueueProgress) Update(job domain.Job) {
	if qp.quiet {
		return
	}

	qp.mu.Lock()
	defer qp.mu.Unlock()

	i, ok := qp.byID[job.ID]
	if !ok {
		return
	}
	prev := qp.jobs[i].Status
	qp.jobs[i] = job

	if !qp.interactive {
		if job.Status != prev && job.Status != domain.JobDownloading {
			fmt.Fprintln(qp.out, qp.jobLine(job))
		}
		return
	}

	// progress ticks are throttled, status changes always redraw
	if job.Status == prev && job.Status == domain.JobDownloading && time.Since(qp.lastRender) < renderInterval {
		return
	}
	qp.render()
}

func (qp *QueueProgress) finished() int {
	n := 0
	for _, j := range qp.jobs {
		if j.Status.IsFinished() {
			n++
		}
	}
	return n
}

// window returns the range of jobs to draw, starting near the first
// unfinished one
func (qp *QueueProgress) window() (int, int) {
	start := 0
	for i, j := range qp.jobs {
		if !j.Status.IsFinished() {
			start = i
			break
		}
		start = i
	}
	start = max(0, min(start, len(qp.jobs)-maxJobLines))
	return start, min(start+maxJobLines, len(qp.jobs))
}

func (qp *QueueProgress) render() {
	qp.lastRender = time.Now()

	if qp.lines > 0 {
		fmt.Fprintf(qp.out, "\033[%dA", qp.lines)
		fmt.Fprint(qp.out, "\033[J")
	}

	total := len(qp.jobs)
	done := qp.finished()
	percent := 0
	if total > 0 {
		percent = (done * 100) / total
	}
	fmt.Fprintf(qp.out, "%d/%d %s %d%%\n", done, total, renderProgressBar(done, total, 20), percent)
	qp.lines = 1

	start, end := qp.window()
	for i := start; i < end; i++ {
		fmt.Fprintln(qp.out, qp.jobLine(qp.jobs[i]))
		qp.lines++
	}
}

func (qp *QueueProgress) jobLine(j domain.Job) string {
	title := Truncate(j.Entry.Title, 40)
	status := qp.msg.T(statusKeys[j.Status])
	line := fmt.Sprintf("%s %s  %s", statusIcon(j.Status), title, status)

	switch j.Status {
	case domain.JobDownloading:
		line += fmt.Sprintf(" %s %5.1f%%", qp.bar.ViewAs(j.Percent/100), j.Percent)
		if j.Speed != "" {
			line += "  " + j.Speed
		}
		if j.ETA != "" {
			line += "  ETA " + j.ETA
		}
	case domain.JobCompleted:
		if !j.StartedAt.IsZero() && !j.FinishedAt.IsZero() {
			line += fmt.Sprintf(" (%s)", FormatElapsed(j.FinishedAt.Sub(j.StartedAt)))
		}
	case domain.JobFailed:
		if j.Err != nil {
			line += ": " + j.Err.Error()
		}
	}
	return line
}

// Complete prints the final summary
func (qp *QueueProgress) Complete(jobs []domain.Job, elapsed time.Duration) {
	if qp.quiet {
		return
	}

	counts := make(map[domain.JobStatus]int)
	var failures []domain.Job
	for _, j := range jobs {
		counts[j.Status]++
		if j.Status == domain.JobFailed {
			failures = append(failures, j)
		}
	}

	fmt.Fprintln(qp.out)
	fmt.Fprintf(qp.out, "%s (%s)\n",
		qp.msg.T(i18n.QueueSummary,
			counts[domain.JobCompleted], counts[domain.JobFailed],
			counts[domain.JobStopped], counts[domain.JobSkipped]),
		FormatElapsed(elapsed))

	for _, j := range jobs {
		if j.Status == domain.JobCompleted && j.OutputPath != "" {
			fmt.Fprintf(qp.out, "  %s\n", j.OutputPath)
		}
	}

	if len(failures) > 0 {
		fmt.Fprintln(qp.out, "\nFailures:")
		for _, f := range failures {
			fmt.Fprintf(qp.out, "  ✗ %s: %v\n", f.Entry.Title, f.Err)
		}
	}
}
