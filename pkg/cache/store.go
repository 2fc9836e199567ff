package cache

import (
	"container/list"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/brightpath-ai/brightpath/pkg/models"
)

// Store is a two-tier intervention cache: a bounded in-memory LRU tier
// in front of a SQLite tier that survives restarts. Eviction removes
// entries from memory only; the SQLite tier is pruned by last-accessed
// age instead.
type Store struct {
	db       *sql.DB
	capacity int
	ttl      time.Duration

	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = most recently used
}

type lruItem struct {
	key   string
	entry models.CacheEntry
}

const createCacheTable = `
CREATE TABLE IF NOT EXISTS intervention_cache (
	cache_key         TEXT PRIMARY KEY,
	intervention_kind TEXT NOT NULL,
	content           TEXT NOT NULL,
	tokens_used       INTEGER NOT NULL DEFAULT 0,
	model             TEXT NOT NULL DEFAULT '',
	created_at        DATETIME NOT NULL,
	last_accessed     DATETIME NOT NULL,
	access_count      INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_cache_accessed ON intervention_cache(last_accessed);
`

// New creates a Store with the given database path, in-memory capacity,
// and durable-tier TTL in days.
func New(dbPath string, capacity, ttlDays int) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	if _, err := db.Exec(createCacheTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}

	return &Store{
		db:       db,
		capacity: capacity,
		ttl:      time.Duration(ttlDays) * 24 * time.Hour,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}, nil
}

// Get retrieves a cached entry by fingerprint. The memory tier is
// checked first; on a durable hit the entry is promoted into memory.
func (s *Store) Get(fingerprint string) (models.CacheEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.entries[fingerprint]; ok {
		s.order.MoveToFront(el)
		item := el.Value.(*lruItem)
		item.entry.LastAccessed = time.Now().UTC()
		item.entry.AccessCount++
		return item.entry, true
	}

	var e models.CacheEntry
	err := s.db.QueryRow(
		`SELECT intervention_kind, content, tokens_used, model, created_at, last_accessed, access_count
		 FROM intervention_cache WHERE cache_key = ?`,
		fingerprint,
	).Scan(&e.Kind, &e.Content, &e.TokensUsed, &e.Model, &e.CreatedAt, &e.LastAccessed, &e.AccessCount)
	if err != nil {
		return models.CacheEntry{}, false
	}

	now := time.Now().UTC()
	_, _ = s.db.Exec(
		`UPDATE intervention_cache SET last_accessed = ?, access_count = access_count + 1 WHERE cache_key = ?`,
		now, fingerprint,
	)
	e.LastAccessed = now
	e.AccessCount++

	s.insertLocked(fingerprint, e)
	return e, true
}

// Set writes an entry to both tiers and prunes expired durable entries.
func (s *Store) Set(fingerprint string, entry models.CacheEntry) error {
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.LastAccessed = now
	if entry.AccessCount == 0 {
		entry.AccessCount = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO intervention_cache
		 (cache_key, intervention_kind, content, tokens_used, model, created_at, last_accessed, access_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		fingerprint, string(entry.Kind), entry.Content, entry.TokensUsed, entry.Model,
		entry.CreatedAt, entry.LastAccessed, entry.AccessCount,
	)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}

	s.insertLocked(fingerprint, entry)

	cutoff := now.Add(-s.ttl)
	_, _ = s.db.Exec(`DELETE FROM intervention_cache WHERE last_accessed < ?`, cutoff)
	return nil
}

// insertLocked places an entry at the front of the memory tier and
// evicts from the back until within capacity. Caller holds s.mu.
func (s *Store) insertLocked(key string, entry models.CacheEntry) {
	if el, ok := s.entries[key]; ok {
		el.Value.(*lruItem).entry = entry
		s.order.MoveToFront(el)
		return
	}
	s.entries[key] = s.order.PushFront(&lruItem{key: key, entry: entry})

	for s.order.Len() > s.capacity {
		back := s.order.Back()
		if back == nil {
			break
		}
		s.order.Remove(back)
		delete(s.entries, back.Value.(*lruItem).key)
	}
}

// Stats returns cache occupancy across both tiers.
func (s *Store) Stats() (models.CacheStats, error) {
	s.mu.Lock()
	memory := len(s.entries)
	s.mu.Unlock()

	var total, accesses int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(access_count), 0) FROM intervention_cache`,
	).Scan(&total, &accesses)
	if err != nil {
		return models.CacheStats{}, fmt.Errorf("cache stats: %w", err)
	}

	return models.CacheStats{
		TotalEntries:  total,
		MemoryEntries: memory,
		TotalAccesses: accesses,
	}, nil
}

// Clear removes cache entries from both tiers. If expiredOnly is true,
// only durable entries past the TTL are removed.
func (s *Store) Clear(expiredOnly bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expiredOnly {
		cutoff := time.Now().UTC().Add(-s.ttl)
		if _, err := s.db.Exec(`DELETE FROM intervention_cache WHERE last_accessed < ?`, cutoff); err != nil {
			return fmt.Errorf("cache clear: %w", err)
		}
		return nil
	}

	if _, err := s.db.Exec(`DELETE FROM intervention_cache`); err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	s.entries = make(map[string]*list.Element)
	s.order.Init()
	return nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
