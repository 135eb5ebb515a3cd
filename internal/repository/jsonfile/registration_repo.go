package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"confregistry/internal/domain"
)

// registrationRepository persists the whole record list in one JSON file.
// Every mutation runs read-all, modify, write-all inside one critical
// section so concurrent mutations cannot lose each other's records.
type registrationRepository struct {
	path   string
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewRegistrationRepository returns a file-backed RegistrationRepository
// writing to path. The parent directory is created if needed; the file
// itself appears on first save.
func NewRegistrationRepository(path string, logger *slog.Logger) (domain.RegistrationRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return &registrationRepository{path: path, logger: logger}, nil
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.load()
	records = append(records, reg)
	return r.save(records)
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, reg := range r.load() {
		if reg.ID == id {
			return reg, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *registrationRepository) List(ctx context.Context) ([]*domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.load(), nil
}

func (r *registrationRepository) Update(ctx context.Context, reg *domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.load()
	for i := range records {
		if records[i].ID == reg.ID {
			records[i] = reg
			return r.save(records)
		}
	}
	return domain.ErrNotFound
}

// load reads the full record list in insertion order. A missing file means
// an empty list; a corrupt file is logged and also treated as empty, so a
// damaged data file degrades reads instead of crashing the process.
func (r *registrationRepository) load() []*domain.Registration {
	file, err := os.Open(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Error("open data file", "path", r.path, "err", err)
		}
		return []*domain.Registration{}
	}
	defer file.Close()

	var records []*domain.Registration
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		r.logger.Error("data file is not valid JSON, treating as empty", "path", r.path, "err", err)
		return []*domain.Registration{}
	}
	return records
}

// save overwrites the persisted list. The write goes to a temp file in the
// same directory that is renamed into place, so a reader never observes a
// partially written file.
func (r *registrationRepository) save(records []*domain.Registration) error {
	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".registrations-*.json")
	if err != nil {
		return fmt.Errorf("create temp data file: %w", err)
	}
	defer os.Remove(tmp.Name())

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		tmp.Close()
		return fmt.Errorf("encode records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp data file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}
