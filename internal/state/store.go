package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"onboard-project/internal/domain"
)

const (
	ConfigDirName     = ".config/onboard-project"
	ConfigFileName    = "pages.yaml"
	SubmissionsDBName = "submissions.db"
	LockFileName      = "lock"
)

type Paths struct {
	Home string
}

func NewPaths(home string) Paths {
	return Paths{Home: home}
}

func (p Paths) ConfigRoot() string {
	return filepath.Join(p.Home, ConfigDirName)
}

func (p Paths) ConfigPath() string {
	return filepath.Join(p.ConfigRoot(), ConfigFileName)
}

func (p Paths) SubmissionsDBPath() string {
	return filepath.Join(p.ConfigRoot(), SubmissionsDBName)
}

func (p Paths) LockPath() string {
	return filepath.Join(p.ConfigRoot(), LockFileName)
}

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// Store is the file-backed configuration store. Write normalizes the
// candidate and persists it atomically; cross-page business rules are the
// caller's responsibility, so the store stays usable for any page count.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Read returns the last written configuration, or the empty configuration
// when nothing has been written yet.
func (s *Store) Read() (domain.Pages, error) {
	var pages domain.Pages
	err := LoadYAML(s.path, &pages)
	if errors.Is(err, os.ErrNotExist) {
		return domain.Pages{}, nil
	}
	if err != nil {
		return domain.Pages{}, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return pages, nil
}

func (s *Store) Write(candidate []domain.PageConfig) (domain.Pages, error) {
	normalized := domain.Pages{Pages: domain.NormalizePages(candidate)}
	if err := SaveYAML(s.path, normalized); err != nil {
		return domain.Pages{}, err
	}
	return normalized, nil
}

// FetchConfig and PersistConfig adapt the store to the transport
// collaborator contract used by the wizard and admin flows.
func (s *Store) FetchConfig(ctx context.Context) (domain.Pages, error) {
	if err := ctx.Err(); err != nil {
		return domain.Pages{}, err
	}
	return s.Read()
}

func (s *Store) PersistConfig(ctx context.Context, candidate []domain.PageConfig) (domain.Pages, error) {
	if err := ctx.Err(); err != nil {
		return domain.Pages{}, err
	}
	return s.Write(candidate)
}

func LoadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// SaveYAML writes through a temp file and renames it into place, so a
// concurrent reader never observes a partial write.
func SaveYAML(path string, in any) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	b, err := yaml.Marshal(in)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

type Lock struct {
	path string
	file *os.File
}

// AcquireLock serializes admin writes with an exclusive-create lock file.
// A lock older than maxLockAge is treated as abandoned and broken.
const maxLockAge = time.Hour

func AcquireLock(paths Paths) (*Lock, error) {
	if err := EnsureDir(paths.ConfigRoot()); err != nil {
		return nil, err
	}
	path := paths.LockPath()
	lock, err := createLock(path)
	if err == nil {
		return lock, nil
	}
	if !errors.Is(err, os.ErrExist) {
		return nil, err
	}

	info, statErr := os.Stat(path)
	if statErr == nil && time.Since(info.ModTime()) < maxLockAge {
		return nil, fmt.Errorf("another onboard process holds the lock")
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	lock, err = createLock(path)
	if errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("another onboard process holds the lock")
	}
	return lock, err
}

func createLock(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintf(f, "pid=%d\ncreated_at=%s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339)); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	return &Lock{path: path, file: f}, nil
}

func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if l.file != nil {
		_ = l.file.Close()
	}
	return os.Remove(l.path)
}
