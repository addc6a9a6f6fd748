// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"passport/config"
	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
)

// CredentialModel is the GORM persistence model for a credential record.
type CredentialModel struct {
	AccountID    string    `gorm:"column:account_id;primaryKey"`
	Username     string    `gorm:"column:username;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

// TableName overrides the default table name.
func (CredentialModel) TableName() string {
	return "credentials"
}

// New opens a GORM connection to PostgreSQL. TranslateError lets the driver
// surface duplicate-key violations as gorm.ErrDuplicatedKey, which the store
// maps to the domain's ErrCredentialExists.
func New(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Store.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to postgres")
	}

	if err := db.AutoMigrate(&CredentialModel{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate credentials table")
	}

	return db, nil
}

// credentialStore implements the repository.CredentialStore interface using GORM.
// Uniqueness is enforced by the primary key on account_id; the database
// serializes racing inserts, so the create-only contract holds without an
// application-level lock.
type credentialStore struct {
	db *gorm.DB
}

// NewCredentialStore is the constructor for credentialStore.
func NewCredentialStore(db *gorm.DB) repository.CredentialStore {
	return &credentialStore{db: db}
}

// Get retrieves a single credential record by account ID.
func (s *credentialStore) Get(ctx context.Context, accountID string) (*entity.Credential, error) {
	var m CredentialModel
	err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, errors.Wrap(err, "failed to find credential by account id")
	}

	return toCredentialDomain(&m), nil
}

// Put persists a new credential record, never overwriting an existing one.
func (s *credentialStore) Put(ctx context.Context, cred *entity.Credential) error {
	m := fromCredentialDomain(cred)

	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrCredentialExists
		}

		return errors.Wrap(err, "failed to create credential")
	}

	cred.CreatedAt = m.CreatedAt

	return nil
}

func toCredentialDomain(m *CredentialModel) *entity.Credential {
	return &entity.Credential{
		AccountID:    m.AccountID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func fromCredentialDomain(cred *entity.Credential) *CredentialModel {
	return &CredentialModel{
		AccountID:    cred.AccountID,
		Username:     cred.Username,
		PasswordHash: cred.PasswordHash,
		CreatedAt:    cred.CreatedAt,
	}
}
