package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ericfisherdev/pwshare/internal/domain/model"
	"github.com/ericfisherdev/pwshare/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo is the SQLite implementation of the CredentialStore port interface.
// Site passwords are stored as given unless a key is supplied, in which case they
// are sealed with AES-256-GCM before write and opened after read.
type CredentialRepo struct {
	db *DB
	sealer
}

// NewCredentialRepo creates a new CredentialRepo. key must be 32 bytes for
// AES-256-GCM, or nil to store site passwords unsealed.
func NewCredentialRepo(db *DB, key []byte) *CredentialRepo {
	return &CredentialRepo{db: db, sealer: sealer{key: key}}
}

// Add inserts a credential for cred.OwnerID and returns the new ID.
func (r *CredentialRepo) Add(ctx context.Context, cred model.Credential) (int64, error) {
	stored, err := r.seal(cred.Password)
	if err != nil {
		return 0, err
	}

	const query = `INSERT INTO passwords (user_id, site_name, password) VALUES (?, ?, ?)`
	result, err := r.db.Writer.ExecContext(ctx, query, cred.OwnerID, cred.SiteName, stored)
	if err != nil {
		return 0, fmt.Errorf("add credential for user %d: %w", cred.OwnerID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read credential id: %w", err)
	}
	return id, nil
}

// GetByID retrieves a credential. Returns nil, nil if it does not exist.
func (r *CredentialRepo) GetByID(ctx context.Context, id int64) (*model.Credential, error) {
	const query = `SELECT id, user_id, site_name, password FROM passwords WHERE id = ?`

	cred, err := r.scanCredential(r.db.Reader.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get credential %d: %w", id, err)
	}
	return cred, nil
}

// ListByOwner returns all credentials owned by ownerID in insertion order.
func (r *CredentialRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Credential, error) {
	const query = `SELECT id, user_id, site_name, password FROM passwords WHERE user_id = ? ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list credentials for user %d: %w", ownerID, err)
	}
	defer rows.Close()

	var creds []model.Credential
	for rows.Next() {
		cred, err := r.scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		creds = append(creds, *cred)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credentials: %w", err)
	}

	return creds, nil
}

func (r *CredentialRepo) scanCredential(s scanner) (*model.Credential, error) {
	var cred model.Credential
	var stored string
	if err := s.Scan(&cred.ID, &cred.OwnerID, &cred.SiteName, &stored); err != nil {
		return nil, err
	}

	password, err := r.open(stored)
	if err != nil {
		return nil, fmt.Errorf("open credential %d: %w", cred.ID, err)
	}
	cred.Password = password
	return &cred, nil
}
