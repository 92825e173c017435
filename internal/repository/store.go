package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/task-manager/internal/model"
	"github.com/iliyamo/task-manager/internal/utils"
)

// Demo credentials of the seed dataset.
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password123"
)

// Config controls how a Store is opened.
type Config struct {
	Path     string      // backing JSON file
	Seed     bool        // seed demo data when the file is missing or unreadable
	SeedCost int         // bcrypt cost for the demo password
	Logger   *zap.Logger // nil means no logging
}

// document is the on-disk shape of the backing file.
type document struct {
	Users []model.User `json:"users"`
	Tasks []model.Task `json:"tasks"`
}

// Store is an embedded two-collection document store.  Every mutation is
// applied in memory and then written to the backing file as a whole before
// the call returns.  One RWMutex guards both collections and the write,
// so readers never observe a half-applied change and concurrent writers
// cannot lose updates or tear the file.
type Store struct {
	mu     sync.RWMutex
	path   string
	log    *zap.Logger
	users  []model.User
	tasks  []model.Task
	closed bool

	now       func() time.Time
	newID     func() string
	writeFile func(path string, data []byte) error
}

// Open loads the backing file into memory.  A missing file starts the store
// from the seed dataset (or empty when cfg.Seed is false); a malformed file
// is logged and treated the same way.  The seed is not written until the
// first mutation.
func Open(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("store path is required")
	}
	lg := cfg.Logger
	if lg == nil {
		lg = zap.NewNop()
	}
	s := &Store{
		path:      cfg.Path,
		log:       lg.Named("store"),
		now:       time.Now,
		newID:     uuid.NewString,
		writeFile: atomicWrite,
	}

	doc, err := readDocument(cfg.Path)
	switch {
	case err == nil:
		s.users, s.tasks = doc.Users, doc.Tasks
		s.log.Info("store loaded",
			zap.String("path", cfg.Path),
			zap.Int("users", len(s.users)),
			zap.Int("tasks", len(s.tasks)))
	case errors.Is(err, fs.ErrNotExist):
		s.log.Info("store file missing, starting fresh", zap.String("path", cfg.Path), zap.Bool("seed", cfg.Seed))
		if err := s.seed(cfg); err != nil {
			return nil, err
		}
	default:
		s.log.Warn("store file unreadable, falling back to seed data", zap.String("path", cfg.Path), zap.Error(err))
		if err := s.seed(cfg); err != nil {
			return nil, err
		}
	}
	if s.users == nil {
		s.users = []model.User{}
	}
	if s.tasks == nil {
		s.tasks = []model.Task{}
	}
	return s, nil
}

// Close stops accepting mutations.  Nothing is buffered, so there is
// nothing to flush.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.log.Info("store closed", zap.String("path", s.path))
	return nil
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Stats returns the collection sizes.
func (s *Store) Stats() (users, tasks int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), len(s.tasks)
}

func (s *Store) seed(cfg Config) error {
	if !cfg.Seed {
		return nil
	}
	cost := cfg.SeedCost
	if cost == 0 {
		cost = 10
	}
	hash, err := utils.HashPassword(DemoPassword, cost)
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	now := s.timestamp()
	s.users = []model.User{{
		ID:           "1",
		Name:         "Demo User",
		Email:        DemoEmail,
		PasswordHash: hash,
		CreatedAt:    now,
	}}
	s.tasks = []model.Task{
		{
			ID:          "1",
			UserID:      "1",
			Title:       "Welcome to Task Manager",
			Description: "This is your first task. Try adding more!",
			Category:    "development",
			Priority:    model.PriorityMedium,
			DueDate:     now.Add(24 * time.Hour).Format(time.RFC3339),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "2",
			UserID:      "1",
			Title:       "Complete Q1 Report",
			Description: "Prepare quarterly financial report",
			Completed:   true,
			Category:    "finance",
			Priority:    model.PriorityHigh,
			DueDate:     now.Add(48 * time.Hour).Format(time.RFC3339),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
	return nil
}

// persist writes both collections to disk.  Callers hold s.mu for writing.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(document{Users: s.users, Tasks: s.tasks}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersist, err)
	}
	if err := s.writeFile(s.path, data); err != nil {
		s.log.Error("store write failed", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

// mutable checks the preconditions shared by every mutation.  Callers hold
// s.mu for writing.
func (s *Store) mutable(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.closed {
		return ErrClosed
	}
	return nil
}

// timestamp returns the current UTC time, truncated for stable JSON.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func readDocument(path string) (document, error) {
	var doc document
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

// atomicWrite replaces path with data through a temp file in the same
// directory, creating the directory when needed.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
