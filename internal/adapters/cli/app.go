package cli

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/devbush/ytgrab/internal/adapters/cache"
	"github.com/devbush/ytgrab/internal/adapters/deps"
	"github.com/devbush/ytgrab/internal/adapters/ytdlp"
	"github.com/devbush/ytgrab/internal/application"
	"github.com/devbush/ytgrab/internal/config"
	"github.com/devbush/ytgrab/internal/domain"
	"github.com/devbush/ytgrab/internal/i18n"
	"github.com/devbush/ytgrab/internal/log"
)

// App holds all application dependencies
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Msg       *i18n.Translator
	Client    *ytdlp.Client
	Installer *deps.Installer
	Cache     *cache.FileCache

	AnalyzeSvc *application.AnalyzeService
	QueueSvc   *application.QueueService
	SetupSvc   *application.SetupService
	CacheSvc   *application.CacheService
}

// NewApp loads the config and wires up all dependencies. lang overrides
// the configured language when non-empty.
func NewApp(lang string) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	logger := log.WithComponent("cli")

	ttl, err := cfg.GetCacheTTL()
	if err != nil {
		logger.Warn().Err(err).Str("cache_ttl", cfg.Defaults.CacheTTL).Msg("invalid cache_ttl, using 24h")
		ttl = 24 * time.Hour
	}

	if lang == "" {
		lang = cfg.Defaults.Language
	}
	msg := i18n.New(i18n.Resolve(lang, os.LookupEnv))
	logger.Debug().Str("language", lang).Str("locale", msg.Locale()).Msg("messages loaded")

	overrides := map[domain.Tool]string{
		domain.ToolYtDlp:  cfg.Paths.YtDlp,
		domain.ToolFFmpeg: cfg.Paths.FFmpeg,
	}
	locator := ytdlp.NewLocator(config.BinDir(), overrides)
	client := ytdlp.NewClient(locator, log.WithComponent("ytdlp"))
	installer := deps.NewInstaller(afero.NewOsFs(), client, log.WithComponent("deps"))
	cacheStore := cache.NewFileCache(config.ProbeCacheDir(), ttl)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Msg:       msg,
		Client:    client,
		Installer: installer,
		Cache:     cacheStore,

		AnalyzeSvc: application.NewAnalyzeService(client, cacheStore, ttl, log.WithComponent("analyze")),
		QueueSvc:   application.NewQueueService(client, log.WithComponent("queue")),
		SetupSvc:   application.NewSetupService(installer, config.EnsureDirs, msg, log.WithComponent("setup")),
		CacheSvc:   application.NewCacheService(cacheStore),
	}, nil
}

// Close releases idle network connections held by the installer
func (a *App) Close() {
	a.Installer.Close()
}

var globalApp *App

// GetApp returns the global app instance, creating it if needed
func GetApp() (*App, error) {
	if globalApp == nil {
		app, err := NewApp(langFlag)
		if err != nil {
			return nil, err
		}
		globalApp = app
	}
	return globalApp, nil
}

func closeApp() {
	if globalApp != nil {
		globalApp.Close()
		globalApp = nil
	}
}
