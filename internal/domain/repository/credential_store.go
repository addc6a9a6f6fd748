// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"passport/internal/domain/entity"
)

// ErrCredentialNotFound is returned by Get when no record exists for the account ID.
var ErrCredentialNotFound = errors.New("credential not found")

// ErrCredentialExists is returned by Put when the account ID already has a record.
// Registration is create-only; an existing record is never overwritten.
var ErrCredentialExists = errors.New("credential already exists")

// CredentialStore is the durable mapping from account identifier to credential
// record. Implementations must make a successful Put durable before returning
// and must serialize concurrent Puts so the persisted collection is never a
// partial interleaving of two writes. Get must never observe a torn write.
type CredentialStore interface {
	// Get retrieves the credential record for the given account ID.
	// It is a pure lookup with no side effects.
	Get(ctx context.Context, accountID string) (*entity.Credential, error)

	// Put persists a new credential record. It fails with ErrCredentialExists
	// when the account ID is already registered.
	Put(ctx context.Context, cred *entity.Credential) error
}
