package favorites

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"estate-explorer/utils"
)

// ErrLoginRequired is returned when an anonymous session tries to change favorites.
var ErrLoginRequired = errors.New("login required")

// Store keeps one user's favorite record ids in a local SQLite file and
// mirrors them in memory for filtering.
type Store struct {
	db     *sql.DB
	user   string
	ids    *utils.KeySet
	logger *utils.Logger

	mu          sync.Mutex
	subscribers map[int]func(ids []string)
	nextSub     int
}

// Open opens (or creates) the favorites database at path for user. An empty
// user is an anonymous session: nothing is loaded and toggles are refused.
func Open(path, user string, logger *utils.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("favorites: create dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("favorites: open: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{
		db:          db,
		user:        user,
		ids:         utils.NewKeySet(),
		logger:      logger,
		subscribers: make(map[int]func([]string)),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("favorites: migrate: %w", err)
	}
	if err := s.load(); err != nil {
		db.Close()
		return nil, fmt.Errorf("favorites: load: %w", err)
	}
	logger.Debug("[favorites] %d favorites loaded for %q", s.ids.Size(), user)
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS favorites (
			user_id    TEXT NOT NULL,
			item_id    TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, item_id)
		);
	`)
	return err
}

func (s *Store) load() error {
	if s.user == "" {
		return nil
	}
	rows, err := s.db.Query(`SELECT item_id FROM favorites WHERE user_id = ?`, s.user)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		s.ids.Add(id)
	}
	return rows.Err()
}

// LoggedIn reports whether the store belongs to a user.
func (s *Store) LoggedIn() bool {
	return s.user != ""
}

// IsFavorite reports whether id is marked. Safe on a nil Store.
func (s *Store) IsFavorite(id string) bool {
	if s == nil {
		return false
	}
	return s.ids.Contains(id)
}

// IDs returns the favorite ids in sorted order.
func (s *Store) IDs() []string {
	return s.ids.Keys()
}

// Toggle flips id and reports whether it is now a favorite. Subscribers are
// notified after the change is stored.
func (s *Store) Toggle(id string) (bool, error) {
	if s.user == "" {
		return false, ErrLoginRequired
	}
	if id == "" {
		return false, errors.New("favorites: empty id")
	}

	added := !s.ids.Contains(id)
	var err error
	if added {
		_, err = s.db.Exec(`INSERT OR IGNORE INTO favorites (user_id, item_id) VALUES (?, ?)`, s.user, id)
	} else {
		_, err = s.db.Exec(`DELETE FROM favorites WHERE user_id = ? AND item_id = ?`, s.user, id)
	}
	if err != nil {
		return !added, fmt.Errorf("favorites: toggle %s: %w", id, err)
	}

	if added {
		s.ids.Add(id)
	} else {
		s.ids.Remove(id)
	}
	s.logger.Debug("[favorites] %s favorite=%v", id, added)
	s.notify()
	return added, nil
}

// Subscribe registers fn to receive the full id list after every change.
// The returned func unregisters it.
func (s *Store) Subscribe(fn func(ids []string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func([]string), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	ids := s.IDs()
	for _, fn := range fns {
		fn(ids)
	}
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
