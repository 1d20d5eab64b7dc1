package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	statsout "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteStateStore is the durable key-value store behind every counter,
// setting and snapshot. A single kv table keeps the last writer per key;
// there are no transactions across keys.
type SQLiteStateStore struct {
	db      *sql.DB
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	nextID  int
	subs    map[int]func(key string)
	closed  chan struct{}
	pending *time.Timer
}

func NewSQLiteStateStore(dbPath string) (*SQLiteStateStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteStateStore{
		db:     db,
		subs:   map[int]func(key string){},
		closed: make(chan struct{}),
	}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStateStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

func (s *SQLiteStateStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStateStore) Set(ctx context.Context, key, value string) error {
	const stmt = `
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at;
`
	if _, err := s.db.ExecContext(ctx, stmt, key, value, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	s.notify(key)
	return nil
}

func (s *SQLiteStateStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	s.notify(key)
	return nil
}

func (s *SQLiteStateStore) Subscribe(fn func(key string)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// WatchExternal observes the database file so writes from another process of
// the same store raise the storage-changed signal too. Observers receive an
// empty key and must recompute from stored facts, which is cheap and
// idempotent by design of the aggregator.
func (s *SQLiteStateStore) WatchExternal(dbPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new state watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(dbPath)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch state dir: %w", err)
	}
	s.watcher = watcher

	go func() {
		base := filepath.Base(dbPath)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				name := filepath.Base(event.Name)
				if name != base && name != base+"-wal" {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				s.debouncedNotify()
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case <-s.closed:
				return
			}
		}
	}()
	return nil
}

func (s *SQLiteStateStore) Close() error {
	s.mu.Lock()
	select {
	case <-s.closed:
	default:
		close(s.closed)
	}
	s.mu.Unlock()
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	return s.db.Close()
}

func (s *SQLiteStateStore) notify(key string) {
	s.mu.Lock()
	fns := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(key)
	}
}

// debouncedNotify coalesces bursts of file events into one signal.
func (s *SQLiteStateStore) debouncedNotify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		s.pending.Stop()
	}
	s.pending = time.AfterFunc(250*time.Millisecond, func() {
		s.notify("")
	})
}

var _ statsout.StateStore = (*SQLiteStateStore)(nil)
