package application

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/devbush/ytgrab/internal/domain"
	"github.com/devbush/ytgrab/internal/i18n"
	"github.com/devbush/ytgrab/internal/ports"
)

// Messages formats localized status text
type Messages interface {
	T(key string, args ...any) string
}

// SetupService runs the first-run dependency bootstrap
type SetupService struct {
	installer  ports.DependencyInstaller
	ensureDirs func() error
	msg        Messages
	logger     zerolog.Logger
}

// NewSetupService creates a new setup service. ensureDirs creates the data
// directories and is the first bootstrap step.
func NewSetupService(installer ports.DependencyInstaller, ensureDirs func() error, msg Messages, logger zerolog.Logger) *SetupService {
	return &SetupService{
		installer:  installer,
		ensureDirs: ensureDirs,
		msg:        msg,
		logger:     logger,
	}
}

// Status reports where each tool resolves to
func (s *SetupService) Status() []domain.ToolStatus {
	return s.installer.Status()
}

// Resolve reports where a single tool resolves to
func (s *SetupService) Resolve(tool domain.Tool) domain.ToolStatus {
	return s.installer.Resolve(tool)
}

// Bootstrap makes sure both tools are present and working.
//
// Missing tools are installed and an install failure ends the bootstrap
// with a SetupFailed event. The yt-dlp update and the ffmpeg health check
// only report their outcome.
func (s *SetupService) Bootstrap(ctx context.Context, emit func(domain.SetupEvent)) error {
	if emit == nil {
		emit = func(domain.SetupEvent) {}
	}

	if s.ensureDirs != nil {
		if err := s.ensureDirs(); err != nil {
			return s.fail(emit, s.msg.T(i18n.SetupFolderError, err), err)
		}
	}

	if !s.installer.Resolve(domain.ToolYtDlp).Available() {
		if err := s.Install(ctx, domain.ToolYtDlp, emit); err != nil {
			return s.fail(emit, s.msg.T(i18n.SetupYtDlpInstallFail, err), err)
		}
	}

	if !s.installer.Resolve(domain.ToolFFmpeg).Available() {
		emit(domain.SetupEvent{Stage: domain.SetupStarting, Message: s.msg.T(i18n.SetupFFmpegInstall)})
		if err := s.Install(ctx, domain.ToolFFmpeg, emit); err != nil {
			return s.fail(emit, s.msg.T(i18n.SetupFFmpegFail, err), err)
		}
	}

	s.Update(ctx, emit)
	s.CheckFFmpeg(ctx, emit)

	if err := ctx.Err(); err != nil {
		return s.fail(emit, err.Error(), err)
	}
	emit(domain.SetupEvent{Stage: domain.SetupCompleted, Message: s.msg.T(i18n.SetupCompleted)})
	return nil
}

// Install downloads one tool, translating installer callbacks into events
func (s *SetupService) Install(ctx context.Context, tool domain.Tool, emit func(domain.SetupEvent)) error {
	file := string(tool)
	hooks := ports.InstallHooks{
		Downloading: func(name string) {
			emit(domain.SetupEvent{Stage: domain.SetupStarting, File: name, Message: s.msg.T(i18n.SetupDownloadingPrep, name)})
		},
		Progress: func(downloaded, total int64) {
			ev := domain.SetupEvent{Stage: domain.SetupDownloading, File: file}
			if total > 0 {
				ev.Percent = float64(downloaded) / float64(total) * 100
			}
			emit(ev)
		},
		Retrying: func(name string, err error) {
			emit(domain.SetupEvent{Stage: domain.SetupStarting, File: name, Message: s.msg.T(i18n.SetupRetry, name)})
		},
		Extracting: func(name string) {
			emit(domain.SetupEvent{Stage: domain.SetupExtracting, File: name, Message: s.msg.T(i18n.SetupExtracting, name)})
		},
	}

	if err := s.installer.Install(ctx, tool, hooks); err != nil {
		return err
	}
	s.logger.Info().Str("tool", file).Str("path", s.installer.Resolve(tool).Path).Msg("tool ready")
	return nil
}

// Update runs the yt-dlp self update and reports the outcome
func (s *SetupService) Update(ctx context.Context, emit func(domain.SetupEvent)) (string, error) {
	emit(domain.SetupEvent{Stage: domain.SetupStarting, Message: s.msg.T(i18n.SetupUpdateCheck)})

	status, err := s.installer.UpdateYtDlp(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("yt-dlp update failed")
		emit(domain.SetupEvent{Stage: domain.SetupStarting, Message: s.msg.T(i18n.SetupUpdateFail, err)})
		return "", err
	}
	emit(domain.SetupEvent{Stage: domain.SetupStarting, Message: s.msg.T(i18n.SetupUpdateResult, status)})
	return status, nil
}

// CheckFFmpeg runs the ffmpeg health check and reports the outcome
func (s *SetupService) CheckFFmpeg(ctx context.Context, emit func(domain.SetupEvent)) (string, error) {
	emit(domain.SetupEvent{Stage: domain.SetupStarting, Message: s.msg.T(i18n.SetupFFmpegCheck)})

	version, err := s.installer.CheckFFmpeg(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("ffmpeg check failed")
		emit(domain.SetupEvent{Stage: domain.SetupStarting, Message: s.msg.T(i18n.SetupFFmpegCheckFail, err)})
		return "", err
	}
	emit(domain.SetupEvent{Stage: domain.SetupStarting, Message: s.msg.T(i18n.SetupFFmpegOK, version)})
	return version, nil
}

func (s *SetupService) fail(emit func(domain.SetupEvent), message string, err error) error {
	s.logger.Error().Err(err).Msg("setup failed")
	emit(domain.SetupEvent{Stage: domain.SetupFailed, Message: message, Err: err})
	return fmt.Errorf("setup: %w", err)
}
