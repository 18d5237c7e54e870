package storage

import (
	"docsync/contract"
	"docsync/domain"
	"docsync/errors"
	"fmt"
	"log/slog"
	"strings"
)

type IDocumentStore interface {
	Create(name string) bool
	Write(name, content string) error
	Read(name string) (string, error)
	List() []string
	Exists(name string) bool
}

// DocumentStore is the single writer of document state. Every operation
// validates the name before the backend is touched; a name that fails
// validation is a rejected operation, never a partial write.
type DocumentStore struct {
	backend contract.Backend
	log     *slog.Logger
}

func NewDocumentStore(backend contract.Backend, log *slog.Logger) *DocumentStore {
	return &DocumentStore{backend: backend, log: log}
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.ErrEmptyName
	}
	if !domain.ValidDocumentName(name) {
		return fmt.Errorf("%w: %s", errors.ErrInvalidName, name)
	}
	return nil
}

// Create makes an empty document if the name is valid and not yet taken.
// Invalid name and collision both come back as a plain false; callers at
// this layer do not get to distinguish them.
func (s *DocumentStore) Create(name string) bool {
	if err := validateName(name); err != nil {
		return false
	}
	exists, err := s.backend.Exists(name)
	if err != nil || exists {
		return false
	}
	if err := s.backend.Write(name, ""); err != nil {
		s.log.Error("document creation failed", "name", name, "error", err)
		return false
	}
	return true
}

// Write overwrites the document unconditionally, whether or not it already
// existed. The literal two-character sequence backslash-n in content is
// turned into an actual newline before persisting, an accommodation for
// line-delimited transport encoding. The transform is not reversible.
func (s *DocumentStore) Write(name, content string) error {
	if err := validateName(name); err != nil {
		return err
	}
	return s.backend.Write(name, strings.ReplaceAll(content, `\n`, "\n"))
}

// Read returns the exact persisted bytes as text.
func (s *DocumentStore) Read(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	exists, err := s.backend.Exists(name)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("%w: %s", errors.ErrNotFound, name)
	}
	return s.backend.Read(name)
}

// List returns the names of existing documents. A backing-store failure is
// logged and degrades to an empty result, never an error to the caller.
func (s *DocumentStore) List() []string {
	names, err := s.backend.ListRegularEntries()
	if err != nil {
		s.log.Error("document listing failed", "error", err)
		return nil
	}
	return names
}

func (s *DocumentStore) Exists(name string) bool {
	if err := validateName(name); err != nil {
		return false
	}
	exists, err := s.backend.Exists(name)
	if err != nil {
		return false
	}
	return exists
}
