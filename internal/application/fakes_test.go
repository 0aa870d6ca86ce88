package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/devbush/ytgrab/internal/domain"
	"github.com/devbush/ytgrab/internal/ports"
)

// fakeProber returns a fixed playlist and counts calls
type fakeProber struct {
	info  *domain.PlaylistInfo
	err   error
	calls int
}

func (f *fakeProber) Probe(ctx context.Context, url string) (*domain.PlaylistInfo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return clonePlaylist(f.info), nil
}

// memoryCache implements ports.ProbeCache in memory. err, when set, is
// returned by every maintenance call.
type memoryCache struct {
	items map[string]*ports.CachedProbe
	err   error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string]*ports.CachedProbe)}
}

func (m *memoryCache) Get(ctx context.Context, url string) (*ports.CachedProbe, error) {
	item, ok := m.items[url]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	if time.Now().After(item.ExpiresAt) {
		return nil, domain.ErrCacheExpired
	}
	return item, nil
}

func (m *memoryCache) Set(ctx context.Context, item *ports.CachedProbe) error {
	m.items[item.URL] = item
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, url string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.items, url)
	return nil
}

func (m *memoryCache) CleanExpired(ctx context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	removed := 0
	for url, item := range m.items {
		if time.Now().After(item.ExpiresAt) {
			delete(m.items, url)
			removed++
		}
	}
	return removed, nil
}

func (m *memoryCache) Clear(ctx context.Context) error {
	if m.err != nil {
		return m.err
	}
	clear(m.items)
	return nil
}

// Stats counts each entry's URL length as its size
func (m *memoryCache) Stats(ctx context.Context) (int, int64, error) {
	if m.err != nil {
		return 0, 0, m.err
	}
	var size int64
	for url := range m.items {
		size += int64(len(url))
	}
	return len(m.items), size, nil
}

// fakeDownloader emits a short event sequence per request. Entries whose ID
// is in fail return that error; entries in block wait for cancellation.
type fakeDownloader struct {
	mu      sync.Mutex
	fail    map[string]error
	block   map[string]bool
	started chan string
	order   []string
	active  int
	peak    int
	hold    time.Duration
}

func (f *fakeDownloader) Download(ctx context.Context, req ports.DownloadRequest, emit func(domain.Event)) (*ports.DownloadResult, error) {
	f.mu.Lock()
	f.order = append(f.order, req.Entry.ID)
	f.active++
	if f.active > f.peak {
		f.peak = f.active
	}
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.active--
		f.mu.Unlock()
	}()

	emit(domain.Event{JobID: req.JobID, Kind: domain.EventStarting})
	if f.started != nil {
		f.started <- req.Entry.ID
	}

	if f.block[req.Entry.ID] {
		<-ctx.Done()
		emit(domain.Event{JobID: req.JobID, Kind: domain.EventStopped})
		return nil, domain.ErrStopped
	}

	if f.hold > 0 {
		time.Sleep(f.hold)
	}

	if err := f.fail[req.Entry.ID]; err != nil {
		if errors.Is(err, errSilent) {
			return nil, err
		}
		emit(domain.Event{JobID: req.JobID, Kind: domain.EventFailed, Err: err})
		return nil, err
	}

	emit(domain.Event{JobID: req.JobID, Kind: domain.EventProgress, Percent: 50, Speed: "1.00MiB/s"})
	path := fmt.Sprintf("%s/%s.%s", req.OutputDir, req.Entry.ID, req.Format)
	emit(domain.Event{JobID: req.JobID, Kind: domain.EventCompleted, OutputPath: path})
	return &ports.DownloadResult{OutputPath: path}, nil
}

// errSilent makes fakeDownloader fail without emitting an event
var errSilent = errors.New("failed before start")

// fakeInstaller implements ports.DependencyInstaller
type fakeInstaller struct {
	present    map[domain.Tool]bool
	installErr map[domain.Tool]error
	updateErr  error
	ffmpegErr  error
	installed  []domain.Tool
}

func (f *fakeInstaller) Status() []domain.ToolStatus {
	return []domain.ToolStatus{f.Resolve(domain.ToolYtDlp), f.Resolve(domain.ToolFFmpeg)}
}

func (f *fakeInstaller) Resolve(tool domain.Tool) domain.ToolStatus {
	if f.present[tool] {
		return domain.ToolStatus{Tool: tool, Path: "/bin/" + string(tool), Bundled: true}
	}
	return domain.ToolStatus{Tool: tool}
}

func (f *fakeInstaller) Install(ctx context.Context, tool domain.Tool, hooks ports.InstallHooks) error {
	if hooks.Downloading != nil {
		hooks.Downloading(string(tool))
	}
	if err := f.installErr[tool]; err != nil {
		return err
	}
	if hooks.Progress != nil {
		hooks.Progress(50, 100)
		hooks.Progress(100, 100)
	}
	if tool == domain.ToolFFmpeg && hooks.Extracting != nil {
		hooks.Extracting(string(tool))
	}
	f.installed = append(f.installed, tool)
	if f.present == nil {
		f.present = make(map[domain.Tool]bool)
	}
	f.present[tool] = true
	return nil
}

func (f *fakeInstaller) UpdateYtDlp(ctx context.Context) (string, error) {
	if f.updateErr != nil {
		return "", f.updateErr
	}
	return "yt-dlp is up to date", nil
}

func (f *fakeInstaller) CheckFFmpeg(ctx context.Context) (string, error) {
	if f.ffmpegErr != nil {
		return "", f.ffmpegErr
	}
	return "ffmpeg version 7.1", nil
}

// keyMessages renders the message key itself so tests can match on it
type keyMessages struct{}

func (keyMessages) T(key string, args ...any) string {
	if len(args) == 0 {
		return key
	}
	return fmt.Sprint(append([]any{key + ":"}, args...)...)
}
