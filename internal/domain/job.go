package domain

import "time"

// JobStatus is the lifecycle state of a single download job
type JobStatus string

const (
	JobPending     JobStatus = "pending"
	JobStarting    JobStatus = "starting"
	JobDownloading JobStatus = "downloading"
	JobConverting  JobStatus = "converting"
	JobCompleted   JobStatus = "completed"
	JobFailed      JobStatus = "failed"
	JobStopped     JobStatus = "stopped"
	JobSkipped     JobStatus = "skipped"
)

// IsActive reports whether a process is running for the job
func (s JobStatus) IsActive() bool {
	return s == JobStarting || s == JobDownloading || s == JobConverting
}

// IsFinished reports whether the job reached a terminal state
func (s JobStatus) IsFinished() bool {
	switch s {
	case JobCompleted, JobFailed, JobStopped, JobSkipped:
		return true
	}
	return false
}

// Job is one entry queued for download
type Job struct {
	ID           string
	Index        int
	Entry        MediaEntry
	Format       Format
	AudioQuality string
	OutputDir    string

	Status     JobStatus
	Percent    float64
	Speed      string
	ETA        string
	OutputPath string
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// EventKind identifies what happened in the download engine
type EventKind int

const (
	EventStarting EventKind = iota
	EventProgress
	EventConverting
	EventCompleted
	EventFailed
	EventStopped
)

func (k EventKind) String() string {
	switch k {
	case EventStarting:
		return "starting"
	case EventProgress:
		return "progress"
	case EventConverting:
		return "converting"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	case EventStopped:
		return "stopped"
	}
	return "unknown"
}

// Event is emitted while a job runs
type Event struct {
	JobID      string
	Kind       EventKind
	Percent    float64 // 0-100
	Speed      string  // as printed by yt-dlp, e.g. 1.23MiB/s
	ETA        string
	Message    string
	OutputPath string
	Err        error
}

// Apply folds an event into the job state
func (j *Job) Apply(ev Event) {
	switch ev.Kind {
	case EventStarting:
		j.Status = JobStarting
		j.StartedAt = time.Now()
	case EventProgress:
		j.Status = JobDownloading
		j.Percent = ev.Percent
		j.Speed = ev.Speed
		j.ETA = ev.ETA
	case EventConverting:
		j.Status = JobConverting
	case EventCompleted:
		j.Status = JobCompleted
		j.Percent = 100
		j.OutputPath = ev.OutputPath
		j.FinishedAt = time.Now()
	case EventFailed:
		j.Status = JobFailed
		j.Err = ev.Err
		j.FinishedAt = time.Now()
	case EventStopped:
		j.Status = JobStopped
		j.Err = ErrStopped
		j.FinishedAt = time.Now()
	}
}
