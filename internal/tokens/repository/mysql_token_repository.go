package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/converso/piivault/internal/database"
	tokensDomain "github.com/converso/piivault/internal/tokens/domain"
)

// MySQLTokenRepository implements token persistence for MySQL.
// Uses transaction support via database.GetTx().
type MySQLTokenRepository struct {
	db *sql.DB
}

// Put inserts a new token record. A primary key conflict is surfaced as
// ErrTokenIDConflict.
func (m *MySQLTokenRepository) Put(ctx context.Context, token *tokensDomain.Token) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO pii_tokens (token_id, merchant_id, owner_id, data_type, encrypted_value, created_at, expires_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.TokenID,
		token.MerchantID,
		token.OwnerID,
		token.DataType,
		token.EncryptedValue,
		token.CreatedAt,
		token.ExpiresAt,
	)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
			return tokensDomain.ErrTokenIDConflict
		}
		return storeError(err, "failed to store token")
	}
	return nil
}

// Get retrieves a token by the composite (tokenID, merchantID). A record
// belonging to a different merchant is indistinguishable from a missing one:
// both return ErrTokenNotFound.
func (m *MySQLTokenRepository) Get(ctx context.Context, tokenID, merchantID string) (*tokensDomain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT token_id, merchant_id, owner_id, data_type, encrypted_value, created_at, expires_at
			  FROM pii_tokens WHERE token_id = ? AND merchant_id = ?`

	var token tokensDomain.Token

	err := querier.QueryRowContext(ctx, query, tokenID, merchantID).Scan(
		&token.TokenID,
		&token.MerchantID,
		&token.OwnerID,
		&token.DataType,
		&token.EncryptedValue,
		&token.CreatedAt,
		&token.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tokensDomain.ErrTokenNotFound
		}
		return nil, storeError(err, "failed to get token")
	}

	return &token, nil
}

// Delete removes a token for the given merchant. Deleting a token that does
// not exist is not an error.
func (m *MySQLTokenRepository) Delete(ctx context.Context, tokenID, merchantID string) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM pii_tokens WHERE token_id = ? AND merchant_id = ?`

	_, err := querier.ExecContext(ctx, query, tokenID, merchantID)
	if err != nil {
		return storeError(err, "failed to delete token")
	}
	return nil
}

// DeleteExpired removes all tokens whose expiry is before the given cutoff and
// returns the number of rows removed.
func (m *MySQLTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM pii_tokens WHERE expires_at IS NOT NULL AND expires_at < ?`

	result, err := querier.ExecContext(ctx, query, before)
	if err != nil {
		return 0, storeError(err, "failed to delete expired tokens")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, storeError(err, "failed to count deleted tokens")
	}
	return rows, nil
}

// CountExpired returns the number of tokens whose expiry is before the given
// cutoff without removing them.
func (m *MySQLTokenRepository) CountExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM pii_tokens WHERE expires_at IS NOT NULL AND expires_at < ?`

	var count int64
	if err := querier.QueryRowContext(ctx, query, before).Scan(&count); err != nil {
		return 0, storeError(err, "failed to count expired tokens")
	}
	return count, nil
}

// NewMySQLTokenRepository creates a new MySQL token repository.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}
