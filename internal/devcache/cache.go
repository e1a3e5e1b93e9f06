// Package devcache implements the incremental device page cache.
//
// Pages fetched from the NBI are merged into a growing ordered sequence
// per page size. Pages up to the frontier are served without a network
// call; requests beyond it extend the sequence one page at a time, so
// cached records for pages [1..frontier] are always contiguous and
// gap-free.
package devcache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/acsops/acs-console/internal/nbi"
)

// ErrBadPage indicates a non-positive page or page size.
var ErrBadPage = errors.New("devcache: page and page size must be positive")

// Config is the caching policy taken from the console configuration.
type Config struct {
	Enabled       bool
	ExpiryMinutes int // 0 = never expire
}

// Fetcher retrieves one upstream page of normalized device records and
// the server-reported total count.
type Fetcher interface {
	Fetch(ctx context.Context, limit, skip int) ([]nbi.DeviceRecord, int, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, limit, skip int) ([]nbi.DeviceRecord, int, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, limit, skip int) ([]nbi.DeviceRecord, int, error) {
	return f(ctx, limit, skip)
}

// Cache serves device listing pages, fetching incrementally from the
// NBI and persisting merged state in an injected keyed store.
// Requests for the same page size are serialized so concurrent misses
// cannot interleave their fetch loops.
type Cache struct {
	fetcher Fetcher
	store   KeyedStore
	now     func() time.Time

	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

// New creates a Cache over the given fetcher and keyed store.
func New(fetcher Fetcher, store KeyedStore) *Cache {
	return &Cache{
		fetcher: fetcher,
		store:   store,
		now:     time.Now,
		locks:   make(map[int]*sync.Mutex),
	}
}

// keyLock returns the mutex guarding one page-size key.
func (c *Cache) keyLock(pageSize int) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[pageSize]
	if !ok {
		l = &sync.Mutex{}
		c.locks[pageSize] = l
	}
	return l
}

// GetPage returns the records for the requested page and the total
// matching count.
//
// Pages at or below the frontier are sliced from the cached sequence
// with no network call. Pages beyond it are fetched sequentially from
// frontier+1 upward; each page must complete before the next is issued
// because its skip offset is only safe once the previous page landed,
// and the total is only trusted from the first response of the call.
//
// A fetch failure aborts the loop, keeps everything merged so far and
// returns the error; previously persisted state is never corrupted.
func (c *Cache) GetPage(ctx context.Context, page, pageSize int, cfg Config) ([]nbi.DeviceRecord, int, error) {
	if page < 1 || pageSize < 1 {
		return nil, 0, ErrBadPage
	}

	lock := c.keyLock(pageSize)
	lock.Lock()
	defer lock.Unlock()

	entry := c.load(pageSize, cfg)

	if page <= entry.Frontier {
		return slicePage(entry, page), entry.Total, nil
	}

	start := entry.Frontier
	for i := start + 1; i <= page; i++ {
		records, total, err := c.fetcher.Fetch(ctx, pageSize, (i-1)*pageSize)
		if err != nil {
			// Keep the progress made before the failure.
			c.persist(entry, cfg)
			return nil, 0, fmt.Errorf("fetch page %d: %w", i, err)
		}
		if i == start+1 {
			entry.Total = total
		}
		entry.Records = append(entry.Records, records...)
		entry.Frontier = i
		entry.FetchedAt = c.now()
	}

	c.persist(entry, cfg)
	return slicePage(entry, page), entry.Total, nil
}

// Clear wipes all cached state.
func (c *Cache) Clear() {
	c.store.Clear()
}

// load returns the usable cache entry for a page size, treating missing,
// mismatched, disabled or expired state as empty. Stale persisted state
// is actively removed when caching is disabled.
func (c *Cache) load(pageSize int, cfg Config) *Entry {
	entry, ok := c.store.Load(pageSize)
	if ok && c.valid(entry, pageSize, cfg) {
		return entry
	}
	if !cfg.Enabled && ok {
		c.store.Delete(pageSize)
	}
	return &Entry{PageSize: pageSize}
}

func (c *Cache) valid(entry *Entry, pageSize int, cfg Config) bool {
	if entry == nil || entry.PageSize != pageSize {
		return false
	}
	if !cfg.Enabled {
		return false
	}
	if cfg.ExpiryMinutes > 0 {
		age := c.now().Sub(entry.FetchedAt)
		if age > time.Duration(cfg.ExpiryMinutes)*time.Minute {
			return false
		}
	}
	return true
}

// persist writes the entry when caching is enabled; otherwise nothing is
// stored and any stale persisted state was already cleared on load.
func (c *Cache) persist(entry *Entry, cfg Config) {
	if !cfg.Enabled || entry.Frontier == 0 {
		return
	}
	c.store.Store(entry.PageSize, entry)
}

// slicePage cuts one page out of the merged sequence. A page past the
// end of available data yields a short or empty slice.
func slicePage(entry *Entry, page int) []nbi.DeviceRecord {
	start := (page - 1) * entry.PageSize
	if start >= len(entry.Records) {
		return []nbi.DeviceRecord{}
	}
	end := start + entry.PageSize
	if end > len(entry.Records) {
		end = len(entry.Records)
	}
	return entry.Records[start:end]
}
