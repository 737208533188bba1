package sqlite

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/pwshare/internal/domain/model"
	"github.com/ericfisherdev/pwshare/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ShareStore = (*ShareRepo)(nil)

// ShareRepo is the SQLite implementation of the ShareStore port interface.
// It reads site passwords through the same sealer as CredentialRepo, so both
// must be constructed with the same key.
type ShareRepo struct {
	db *DB
	sealer
}

// NewShareRepo creates a new ShareRepo backed by the given DB.
func NewShareRepo(db *DB, key []byte) *ShareRepo {
	return &ShareRepo{db: db, sealer: sealer{key: key}}
}

// Grant inserts a share grant. The UNIQUE (password_id, shared_with_user_id)
// constraint makes the insert the source of truth: a second grant for the same
// pair returns ErrShareExists and writes nothing.
func (r *ShareRepo) Grant(ctx context.Context, credentialID, recipientID int64) (int64, error) {
	const query = `INSERT INTO shared_passwords (password_id, shared_with_user_id) VALUES (?, ?)`

	result, err := r.db.Writer.ExecContext(ctx, query, credentialID, recipientID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("share credential %d with user %d: %w", credentialID, recipientID, driven.ErrShareExists)
		}
		return 0, fmt.Errorf("share credential %d with user %d: %w", credentialID, recipientID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read share id: %w", err)
	}
	return id, nil
}

// ListSharedWith returns every credential granted to userID that userID does
// not own, ordered by grant.
func (r *ShareRepo) ListSharedWith(ctx context.Context, userID int64) ([]model.SharedCredential, error) {
	const query = `
		SELECT p.id, p.site_name, p.password, u.username
		FROM shared_passwords sp
		JOIN passwords p ON p.id = sp.password_id
		JOIN users u ON u.id = p.user_id
		WHERE sp.shared_with_user_id = ? AND p.user_id != ?
		ORDER BY sp.id`

	rows, err := r.db.Reader.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("list credentials shared with user %d: %w", userID, err)
	}
	defer rows.Close()

	var shared []model.SharedCredential
	for rows.Next() {
		var sc model.SharedCredential
		var stored string
		if err := rows.Scan(&sc.CredentialID, &sc.SiteName, &stored, &sc.OwnerUsername); err != nil {
			return nil, fmt.Errorf("scan shared credential: %w", err)
		}
		sc.Password, err = r.open(stored)
		if err != nil {
			return nil, fmt.Errorf("open credential %d: %w", sc.CredentialID, err)
		}
		shared = append(shared, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shared credentials: %w", err)
	}

	return shared, nil
}

// ListRecipients returns the users credentialID has been shared with, ordered by grant.
func (r *ShareRepo) ListRecipients(ctx context.Context, credentialID int64) ([]model.User, error) {
	const query = `
		SELECT u.id, u.username, u.password_hash
		FROM shared_passwords sp
		JOIN users u ON u.id = sp.shared_with_user_id
		WHERE sp.password_id = ?
		ORDER BY sp.id`

	rows, err := r.db.Reader.QueryContext(ctx, query, credentialID)
	if err != nil {
		return nil, fmt.Errorf("list recipients of credential %d: %w", credentialID, err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipient: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipients: %w", err)
	}

	return users, nil
}
