package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/converso/piivault/internal/errors"
	tokensDomain "github.com/converso/piivault/internal/tokens/domain"
)

// These tests use sqlmock to exercise driver failure paths that are hard to
// reproduce against a live database.

func TestPostgreSQLTokenRepository_DriverErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("PutFailure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("INSERT INTO pii_tokens").WillReturnError(assert.AnError)

		repo := NewPostgreSQLTokenRepository(db)
		err = repo.Put(ctx, &tokensDomain.Token{
			TokenID:    "personal_abc",
			MerchantID: "merchant-1",
			DataType:   tokensDomain.DataTypePersonal,
			CreatedAt:  time.Now().UTC(),
		})

		assert.Error(t, err)
		assert.False(t, apperrors.Is(err, tokensDomain.ErrTokenNotFound))
		// A store outage is an unavailability, not an internal error.
		assert.True(t, apperrors.Is(err, apperrors.ErrUnavailable))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("PutDuplicateKeyIsConflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("INSERT INTO pii_tokens").WillReturnError(
			errors.New(`pq: duplicate key value violates unique constraint "pii_tokens_pkey"`))

		repo := NewPostgreSQLTokenRepository(db)
		err = repo.Put(ctx, &tokensDomain.Token{
			TokenID:    "personal_abc",
			MerchantID: "merchant-1",
			DataType:   tokensDomain.DataTypePersonal,
			CreatedAt:  time.Now().UTC(),
		})

		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
		assert.True(t, apperrors.Is(err, tokensDomain.ErrTokenIDConflict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetFailureIsNotMappedToNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery("SELECT (.+) FROM pii_tokens").WillReturnError(assert.AnError)

		repo := NewPostgreSQLTokenRepository(db)
		token, err := repo.Get(ctx, "personal_abc", "merchant-1")

		assert.Nil(t, token)
		assert.Error(t, err)
		// A database failure must never be reported as a clean miss.
		assert.False(t, apperrors.Is(err, tokensDomain.ErrTokenNotFound))
		assert.True(t, apperrors.Is(err, apperrors.ErrUnavailable))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteFailure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("DELETE FROM pii_tokens").WillReturnError(assert.AnError)

		repo := NewPostgreSQLTokenRepository(db)
		err = repo.Delete(ctx, "personal_abc", "merchant-1")

		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrUnavailable))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteExpiredFailure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("DELETE FROM pii_tokens").WillReturnError(assert.AnError)

		repo := NewPostgreSQLTokenRepository(db)
		count, err := repo.DeleteExpired(ctx, time.Now().UTC())

		assert.Zero(t, count)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMySQLTokenRepository_DriverErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("PutFailure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("INSERT INTO pii_tokens").WillReturnError(assert.AnError)

		repo := NewMySQLTokenRepository(db)
		err = repo.Put(ctx, &tokensDomain.Token{
			TokenID:    "personal_abc",
			MerchantID: "merchant-1",
			DataType:   tokensDomain.DataTypePersonal,
			CreatedAt:  time.Now().UTC(),
		})

		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrUnavailable))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("PutDuplicateEntryIsConflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("INSERT INTO pii_tokens").WillReturnError(
			errors.New("Error 1062 (23000): Duplicate entry 'personal_abc-merchant-1' for key 'PRIMARY'"))

		repo := NewMySQLTokenRepository(db)
		err = repo.Put(ctx, &tokensDomain.Token{
			TokenID:    "personal_abc",
			MerchantID: "merchant-1",
			DataType:   tokensDomain.DataTypePersonal,
			CreatedAt:  time.Now().UTC(),
		})

		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
		assert.True(t, apperrors.Is(err, tokensDomain.ErrTokenIDConflict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CountExpiredFailure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery("SELECT COUNT").WillReturnError(assert.AnError)

		repo := NewMySQLTokenRepository(db)
		count, err := repo.CountExpired(ctx, time.Now().UTC())

		assert.Zero(t, count)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
