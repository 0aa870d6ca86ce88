package application

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/devbush/ytgrab/internal/domain"
	"github.com/devbush/ytgrab/internal/ports"
)

// QueueOptions configures a download run
type QueueOptions struct {
	Format          domain.Format
	AudioQuality    string
	OutputDir       string
	Parallel        int  // values below 2 run one job at a time
	ContinueOnError bool // keep going after a failed job
}

// Summary is the outcome of a queue run
type Summary struct {
	Jobs      []domain.Job
	Completed int
	Failed    int
	Stopped   int
	Skipped   int
	Duration  time.Duration
}

// Err returns nil when every job completed, domain.ErrStopped when the run
// was cancelled, and otherwise the first job failure
func (s *Summary) Err() error {
	if s.Stopped > 0 {
		return domain.ErrStopped
	}
	for _, j := range s.Jobs {
		if j.Status == domain.JobFailed {
			return j.Err
		}
	}
	if s.Skipped > 0 {
		return domain.ErrStopped
	}
	return nil
}

// QueueService downloads entries one job per entry
type QueueService struct {
	downloader ports.MediaDownloader
	logger     zerolog.Logger
}

// NewQueueService creates a new queue service
func NewQueueService(downloader ports.MediaDownloader, logger zerolog.Logger) *QueueService {
	return &QueueService{downloader: downloader, logger: logger}
}

// NewJobs creates pending jobs for entries in order
func NewJobs(entries []domain.MediaEntry, opts QueueOptions) []*domain.Job {
	jobs := make([]*domain.Job, len(entries))
	for i, e := range entries {
		jobs[i] = &domain.Job{
			ID:           uuid.NewString(),
			Index:        i,
			Entry:        e,
			Format:       opts.Format,
			AudioQuality: opts.AudioQuality,
			OutputDir:    opts.OutputDir,
			Status:       domain.JobPending,
		}
	}
	return jobs
}

// Run downloads the jobs. onUpdate receives a copy of a job after every
// change; calls are serialized, so it needs no locking of its own.
//
// A failed job halts the queue unless ContinueOnError is set: jobs that
// have not started are marked skipped. Cancelling ctx stops running jobs
// and skips the rest.
func (s *QueueService) Run(ctx context.Context, jobs []*domain.Job, opts QueueOptions, onUpdate func(domain.Job)) *Summary {
	start := time.Now()
	if onUpdate == nil {
		onUpdate = func(domain.Job) {}
	}

	var (
		mu     sync.Mutex
		halted atomic.Bool
	)
	update := func(job *domain.Job, ev *domain.Event) {
		mu.Lock()
		defer mu.Unlock()
		if ev != nil {
			job.Apply(*ev)
		}
		onUpdate(*job)
	}

	limit := opts.Parallel
	if limit < 1 {
		limit = 1
	}
	var g errgroup.Group
	g.SetLimit(limit)

	for _, job := range jobs {
		g.Go(func() error {
			if halted.Load() || ctx.Err() != nil {
				job.Status = domain.JobSkipped
				update(job, nil)
				return nil
			}

			s.runJob(ctx, job, update)

			if job.Status == domain.JobFailed && !opts.ContinueOnError {
				halted.Store(true)
			}
			return nil
		})
	}
	_ = g.Wait()

	summary := &Summary{Duration: time.Since(start)}
	for _, job := range jobs {
		summary.Jobs = append(summary.Jobs, *job)
		switch job.Status {
		case domain.JobCompleted:
			summary.Completed++
		case domain.JobFailed:
			summary.Failed++
		case domain.JobStopped:
			summary.Stopped++
		case domain.JobSkipped:
			summary.Skipped++
		}
	}
	return summary
}

func (s *QueueService) runJob(ctx context.Context, job *domain.Job, update func(*domain.Job, *domain.Event)) {
	req := ports.DownloadRequest{
		JobID:        job.ID,
		Entry:        job.Entry,
		Format:       job.Format,
		AudioQuality: job.AudioQuality,
		OutputDir:    job.OutputDir,
	}

	log := s.logger.With().Str("job", job.ID).Str("url", job.Entry.URL).Logger()
	log.Debug().Msg("job started")

	res, err := s.downloader.Download(ctx, req, func(ev domain.Event) {
		update(job, &ev)
	})

	// the downloader may return before emitting a terminal event
	var terminal *domain.Event
	switch {
	case errors.Is(err, domain.ErrStopped) || (err != nil && ctx.Err() != nil):
		terminal = &domain.Event{JobID: job.ID, Kind: domain.EventStopped}
	case err != nil:
		terminal = &domain.Event{JobID: job.ID, Kind: domain.EventFailed, Err: err}
	default:
		terminal = &domain.Event{JobID: job.ID, Kind: domain.EventCompleted}
		if res != nil {
			terminal.OutputPath = res.OutputPath
		}
	}

	if wantStatus(terminal.Kind) != job.Status {
		update(job, terminal)
	}

	if err != nil {
		log.Debug().Err(err).Str("status", string(job.Status)).Msg("job finished")
	} else {
		log.Debug().Str("output", job.OutputPath).Msg("job finished")
	}
}

func wantStatus(kind domain.EventKind) domain.JobStatus {
	switch kind {
	case domain.EventStopped:
		return domain.JobStopped
	case domain.EventFailed:
		return domain.JobFailed
	}
	return domain.JobCompleted
}
