package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/devbush/ytgrab/internal/domain"
	"github.com/devbush/ytgrab/internal/ports"
)

const memoryEntries = 64

// FileCache stores probe results as one JSON file per URL, with a small
// in-memory LRU in front
type FileCache struct {
	baseDir string
	memory  *expirable.LRU[string, *ports.CachedProbe]
}

// NewFileCache creates a cache under baseDir. ttl bounds how long entries
// stay in memory; file entries carry their own expiry.
func NewFileCache(baseDir string, ttl time.Duration) *FileCache {
	return &FileCache{
		baseDir: baseDir,
		memory:  expirable.NewLRU[string, *ports.CachedProbe](memoryEntries, nil, ttl),
	}
}

type entryFile struct {
	URL       string               `json:"url"`
	Info      *domain.PlaylistInfo `json:"info"`
	CreatedAt time.Time            `json:"created_at"`
	ExpiresAt time.Time            `json:"expires_at"`
}

// Key returns the file name stem used for url
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:16])
}

func (c *FileCache) entryPath(url string) string {
	return filepath.Join(c.baseDir, Key(url)+".json")
}

func (c *FileCache) Get(ctx context.Context, url string) (*ports.CachedProbe, error) {
	if item, ok := c.memory.Get(url); ok {
		if time.Now().After(item.ExpiresAt) {
			c.memory.Remove(url)
			return nil, domain.ErrCacheExpired
		}
		return item, nil
	}

	item, err := c.readFile(c.entryPath(url))
	if err != nil {
		return nil, err
	}
	if item.URL != url {
		// hash collision on the truncated key
		return nil, domain.ErrCacheMiss
	}
	if time.Now().After(item.ExpiresAt) {
		return nil, domain.ErrCacheExpired
	}

	c.memory.Add(url, item)
	return item, nil
}

func (c *FileCache) readFile(path string) (*ports.CachedProbe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrCacheMiss
		}
		return nil, err
	}

	var entry entryFile
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}

	return &ports.CachedProbe{
		URL:       entry.URL,
		Info:      entry.Info,
		CreatedAt: entry.CreatedAt,
		ExpiresAt: entry.ExpiresAt,
	}, nil
}

func (c *FileCache) Set(ctx context.Context, item *ports.CachedProbe) error {
	if err := os.MkdirAll(c.baseDir, 0755); err != nil {
		return err
	}

	entry := entryFile{
		URL:       item.URL,
		Info:      item.Info,
		CreatedAt: item.CreatedAt,
		ExpiresAt: item.ExpiresAt,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	if err := writeFileAtomic(c.entryPath(item.URL), data, 0644); err != nil {
		return err
	}
	c.memory.Add(item.URL, item)
	return nil
}

func (c *FileCache) Delete(ctx context.Context, url string) error {
	c.memory.Remove(url)
	err := os.Remove(c.entryPath(url))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// entries lists the cache files, ignoring anything else in baseDir
func (c *FileCache) entries() ([]os.DirEntry, error) {
	all, err := os.ReadDir(c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []os.DirEntry
	for _, e := range all {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			files = append(files, e)
		}
	}
	return files, nil
}

func (c *FileCache) CleanExpired(ctx context.Context) (int, error) {
	files, err := c.entries()
	if err != nil {
		return 0, err
	}

	now := time.Now()
	cleaned := 0
	for _, f := range files {
		path := filepath.Join(c.baseDir, f.Name())
		item, err := c.readFile(path)
		if err != nil {
			// unreadable entries are garbage as well
			if os.Remove(path) == nil {
				cleaned++
			}
			continue
		}
		if now.After(item.ExpiresAt) {
			c.memory.Remove(item.URL)
			if os.Remove(path) == nil {
				cleaned++
			}
		}
	}

	return cleaned, nil
}

func (c *FileCache) Clear(ctx context.Context) error {
	c.memory.Purge()

	files, err := c.entries()
	if err != nil {
		return err
	}
	for _, f := range files {
		_ = os.Remove(filepath.Join(c.baseDir, f.Name()))
	}
	return nil
}

func (c *FileCache) Stats(ctx context.Context) (itemCount int, totalSize int64, err error) {
	files, err := c.entries()
	if err != nil {
		return 0, 0, err
	}

	for _, f := range files {
		info, err := f.Info()
		if err != nil {
			continue
		}
		itemCount++
		totalSize += info.Size()
	}

	return itemCount, totalSize, nil
}

var _ ports.ProbeCache = (*FileCache)(nil)
