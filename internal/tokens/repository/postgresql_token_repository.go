// Package repository provides token store backends. All backends key records
// by the composite (token_id, merchant_id) so a token is only visible to the
// tenant that minted it.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/converso/piivault/internal/database"
	tokensDomain "github.com/converso/piivault/internal/tokens/domain"
)

// PostgreSQLTokenRepository implements token persistence for PostgreSQL.
// Uses transaction support via database.GetTx().
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// Put inserts a new token record. Token ids are minted with fresh entropy so
// inserts never upsert; a primary key conflict is surfaced as
// ErrTokenIDConflict.
func (p *PostgreSQLTokenRepository) Put(ctx context.Context, token *tokensDomain.Token) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO pii_tokens (token_id, merchant_id, owner_id, data_type, encrypted_value, created_at, expires_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

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
		if isPostgreSQLUniqueViolation(err) {
			return tokensDomain.ErrTokenIDConflict
		}
		return storeError(err, "failed to store token")
	}
	return nil
}

// Get retrieves a token by the composite (tokenID, merchantID). A record
// belonging to a different merchant is indistinguishable from a missing one:
// both return ErrTokenNotFound.
func (p *PostgreSQLTokenRepository) Get(ctx context.Context, tokenID, merchantID string) (*tokensDomain.Token, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT token_id, merchant_id, owner_id, data_type, encrypted_value, created_at, expires_at
			  FROM pii_tokens WHERE token_id = $1 AND merchant_id = $2`

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
func (p *PostgreSQLTokenRepository) Delete(ctx context.Context, tokenID, merchantID string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM pii_tokens WHERE token_id = $1 AND merchant_id = $2`

	_, err := querier.ExecContext(ctx, query, tokenID, merchantID)
	if err != nil {
		return storeError(err, "failed to delete token")
	}
	return nil
}

// DeleteExpired removes all tokens whose expiry is before the given cutoff and
// returns the number of rows removed.
func (p *PostgreSQLTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM pii_tokens WHERE expires_at IS NOT NULL AND expires_at < $1`

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
func (p *PostgreSQLTokenRepository) CountExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM pii_tokens WHERE expires_at IS NOT NULL AND expires_at < $1`

	var count int64
	if err := querier.QueryRowContext(ctx, query, before).Scan(&count); err != nil {
		return 0, storeError(err, "failed to count expired tokens")
	}
	return count, nil
}

// NewPostgreSQLTokenRepository creates a new PostgreSQL token repository.
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}
