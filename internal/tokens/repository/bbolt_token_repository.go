package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"

	apperrors "github.com/converso/piivault/internal/errors"
	tokensDomain "github.com/converso/piivault/internal/tokens/domain"
)

// tokensBucket holds all token records keyed by merchant_id \x00 token_id.
// Prefixing keys with the merchant keeps tenant data contiguous and makes a
// wrong-tenant lookup a plain key miss.
var tokensBucket = []byte("pii_tokens")

// boltToken is the stored representation of a token record.
type boltToken struct {
	TokenID        string     `json:"token_id"`
	MerchantID     string     `json:"merchant_id"`
	OwnerID        string     `json:"owner_id,omitempty"`
	DataType       string     `json:"data_type"`
	EncryptedValue []byte     `json:"encrypted_value"`
	CreatedAt      time.Time  `json:"created_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

// BboltTokenRepository implements token persistence on an embedded bbolt
// database. Suited for single-node deployments without an external database.
type BboltTokenRepository struct {
	db *bolt.DB
}

func boltKey(tokenID, merchantID string) []byte {
	key := make([]byte, 0, len(merchantID)+1+len(tokenID))
	key = append(key, merchantID...)
	key = append(key, 0)
	key = append(key, tokenID...)
	return key
}

// Put inserts a new token record. An existing record under the same key is
// surfaced as ErrTokenIDConflict rather than overwritten.
func (b *BboltTokenRepository) Put(ctx context.Context, token *tokensDomain.Token) error {
	record := boltToken{
		TokenID:        token.TokenID,
		MerchantID:     token.MerchantID,
		OwnerID:        token.OwnerID,
		DataType:       token.DataType.String(),
		EncryptedValue: token.EncryptedValue,
		CreatedAt:      token.CreatedAt,
		ExpiresAt:      token.ExpiresAt,
	}

	value, err := json.Marshal(record)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode token")
	}

	err = b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(tokensBucket)
		key := boltKey(token.TokenID, token.MerchantID)
		if bucket.Get(key) != nil {
			return tokensDomain.ErrTokenIDConflict
		}
		return bucket.Put(key, value)
	})
	if err != nil {
		if apperrors.Is(err, tokensDomain.ErrTokenIDConflict) {
			return err
		}
		return storeError(err, "failed to store token")
	}
	return nil
}

// Get retrieves a token by the composite (tokenID, merchantID). A record
// belonging to a different merchant is indistinguishable from a missing one:
// both return ErrTokenNotFound.
func (b *BboltTokenRepository) Get(ctx context.Context, tokenID, merchantID string) (*tokensDomain.Token, error) {
	var record *boltToken

	err := b.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(tokensBucket).Get(boltKey(tokenID, merchantID))
		if value == nil {
			return nil
		}

		var decoded boltToken
		if err := json.Unmarshal(value, &decoded); err != nil {
			return err
		}
		record = &decoded
		return nil
	})
	if err != nil {
		return nil, storeError(err, "failed to get token")
	}
	if record == nil {
		return nil, tokensDomain.ErrTokenNotFound
	}

	return &tokensDomain.Token{
		TokenID:        record.TokenID,
		MerchantID:     record.MerchantID,
		OwnerID:        record.OwnerID,
		DataType:       tokensDomain.DataType(record.DataType),
		EncryptedValue: record.EncryptedValue,
		CreatedAt:      record.CreatedAt,
		ExpiresAt:      record.ExpiresAt,
	}, nil
}

// Delete removes a token for the given merchant. Deleting a token that does
// not exist is not an error.
func (b *BboltTokenRepository) Delete(ctx context.Context, tokenID, merchantID string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(tokensBucket).Delete(boltKey(tokenID, merchantID))
	})
	if err != nil {
		return storeError(err, "failed to delete token")
	}
	return nil
}

// DeleteExpired removes all tokens whose expiry is before the given cutoff and
// returns the number of records removed. Requires a full bucket scan.
func (b *BboltTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(tokensBucket)

		var expiredKeys [][]byte
		cursor := bucket.Cursor()
		for key, value := cursor.First(); key != nil; key, value = cursor.Next() {
			var record boltToken
			if err := json.Unmarshal(value, &record); err != nil {
				return err
			}
			if record.ExpiresAt != nil && record.ExpiresAt.Before(before) {
				expiredKeys = append(expiredKeys, bytes.Clone(key))
			}
		}

		for _, key := range expiredKeys {
			if err := bucket.Delete(key); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, storeError(err, "failed to delete expired tokens")
	}
	return deleted, nil
}

// CountExpired returns the number of tokens whose expiry is before the given
// cutoff without removing them.
func (b *BboltTokenRepository) CountExpired(ctx context.Context, before time.Time) (int64, error) {
	var count int64

	err := b.db.View(func(tx *bolt.Tx) error {
		cursor := tx.Bucket(tokensBucket).Cursor()
		for key, value := cursor.First(); key != nil; key, value = cursor.Next() {
			var record boltToken
			if err := json.Unmarshal(value, &record); err != nil {
				return err
			}
			if record.ExpiresAt != nil && record.ExpiresAt.Before(before) {
				count++
			}
		}
		return nil
	})
	if err != nil {
		return 0, storeError(err, "failed to count expired tokens")
	}
	return count, nil
}

// NewBboltTokenRepository creates a new bbolt token repository, ensuring the
// tokens bucket exists.
func NewBboltTokenRepository(db *bolt.DB) (*BboltTokenRepository, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(tokensBucket)
		return err
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create tokens bucket")
	}
	return &BboltTokenRepository{db: db}, nil
}
