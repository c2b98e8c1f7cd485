// Package storage persists uploaded attachments on local disk, namespaced
// by the owning property/service or ticket so files never collide across
// tenants. Database rows keep store-relative paths; only this package
// knows the uploads root.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads root: %w", err)
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string { return s.root }

// SaveServiceAttachment streams r to disk under
// property_<pid>/service_<sid>/<name>, enforcing maxBytes. On overflow the
// partial file is removed and utils.ErrFileTooLarge returned, so callers
// can skip the database insert.
func (s *Store) SaveServiceAttachment(propertyID, serviceID uuid.UUID, fileName string, r io.Reader, maxBytes int64) (string, int64, error) {
	rel := filepath.Join(
		fmt.Sprintf("property_%s", propertyID),
		fmt.Sprintf("service_%s", serviceID),
		SanitizeFileName(fileName),
	)
	return s.save(rel, r, maxBytes)
}

// SaveTicketAttachment streams r to disk under ticket_<tid>/<name> with the
// same overflow behavior as SaveServiceAttachment.
func (s *Store) SaveTicketAttachment(ticketID uuid.UUID, fileName string, r io.Reader, maxBytes int64) (string, int64, error) {
	rel := filepath.Join(
		fmt.Sprintf("ticket_%s", ticketID),
		SanitizeFileName(fileName),
	)
	return s.save(rel, r, maxBytes)
}

// Open returns the stored file for a store-relative path.
func (s *Store) Open(rel string) (*os.File, error) {
	abs, err := s.abs(rel)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(abs)
	if os.IsNotExist(err) {
		return nil, utils.ErrNotFound
	}
	return f, err
}

func (s *Store) Remove(rel string) error {
	abs, err := s.abs(rel)
	if err != nil {
		return err
	}
	err = os.Remove(abs)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Store) save(rel string, r io.Reader, maxBytes int64) (string, int64, error) {
	abs, err := s.abs(rel)
	if err != nil {
		return "", 0, err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", 0, fmt.Errorf("create attachment dir: %w", err)
	}

	f, err := os.Create(abs)
	if err != nil {
		return "", 0, fmt.Errorf("create attachment file: %w", err)
	}

	// Copy one byte past the limit so an exactly-at-limit upload passes
	// and anything larger is detected without reading the whole stream.
	n, err := io.Copy(f, io.LimitReader(r, maxBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(abs)
		return "", 0, fmt.Errorf("write attachment: %w", err)
	}
	if n > maxBytes {
		os.Remove(abs)
		return "", 0, utils.ErrFileTooLarge
	}
	return rel, n, nil
}

func (s *Store) abs(rel string) (string, error) {
	abs := filepath.Join(s.root, filepath.Clean("/"+rel))
	if !strings.HasPrefix(abs, s.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("path %q escapes uploads root", rel)
	}
	return abs, nil
}

// SanitizeFileName strips directory components and replaces spaces so the
// stored name is safe to embed in both filesystem paths and URLs.
func SanitizeFileName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == string(os.PathSeparator) || name == "" {
		return "upload"
	}
	return name
}
