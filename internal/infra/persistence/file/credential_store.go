// Package file contains the concrete implementation of the persistence layer
// backed by a single JSON document on disk.
package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"

	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
)

// credentialRecord is the persisted shape of a credential, keyed by account ID
// in the top-level JSON object.
type credentialRecord struct {
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
}

// credentialStore implements repository.CredentialStore over a whole-file
// JSON collection. Every Put reads the full collection, mutates it in memory,
// and writes the full collection back; the RWMutex serializes that cycle so
// concurrent Puts never interleave partial writes, and Gets never observe a
// torn write. The write itself goes through a temp file and an atomic rename,
// so a crash mid-write leaves the previously durable state intact.
type credentialStore struct {
	path string
	mu   sync.RWMutex
}

// NewCredentialStore is the constructor for credentialStore.
func NewCredentialStore(path string) repository.CredentialStore {
	return &credentialStore{path: path}
}

// Get retrieves a single credential record by account ID.
func (s *credentialStore) Get(_ context.Context, accountID string) (*entity.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	record, ok := records[accountID]
	if !ok {
		return nil, repository.ErrCredentialNotFound
	}

	return toCredentialDomain(accountID, record), nil
}

// Put persists a new credential record. The whole updated collection is
// durable on disk before Put returns success.
func (s *credentialStore) Put(_ context.Context, cred *entity.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}

	if _, ok := records[cred.AccountID]; ok {
		return repository.ErrCredentialExists
	}

	records[cred.AccountID] = credentialRecord{
		Username:     cred.Username,
		Email:        cred.AccountID,
		PasswordHash: cred.PasswordHash,
		CreatedAt:    cred.CreatedAt,
	}

	return s.save(records)
}

// load reads the full collection. A missing file is not an error: it is the
// empty collection, first use simply has nothing on disk yet.
func (s *credentialStore) load() (map[string]credentialRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]credentialRecord{}, nil
		}

		return nil, errors.Wrapf(err, "read credential store %s", s.path)
	}

	records := map[string]credentialRecord{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(err, "decode credential store %s", s.path)
	}

	return records, nil
}

// save writes the full collection back via temp file + rename.
func (s *credentialStore) save(records map[string]credentialRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode credential store")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp credential store")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return errors.Wrap(err, "write temp credential store")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return errors.Wrap(err, "sync temp credential store")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return errors.Wrap(err, "close temp credential store")
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)

		return errors.Wrapf(err, "replace credential store %s", s.path)
	}

	return nil
}

func toCredentialDomain(accountID string, record credentialRecord) *entity.Credential {
	return &entity.Credential{
		AccountID:    accountID,
		Username:     record.Username,
		PasswordHash: record.PasswordHash,
		CreatedAt:    record.CreatedAt,
	}
}
