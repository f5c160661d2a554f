package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TokenStore is the PostgreSQL implementation of domain.TokenStore.
type TokenStore struct {
	pool *pgxpool.Pool
}

// NewTokenStore creates a new postgres TokenStore.
func NewTokenStore(pool *pgxpool.Pool) *TokenStore {
	return &TokenStore{pool: pool}
}

// TokensFor returns all push tokens registered for a user, oldest first.
func (s *TokenStore) TokensFor(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT token FROM device_tokens WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan device token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// Register upserts a token for a user. A token re-registered from another
// account moves to the new owner (the device was logged into a new account).
func (s *TokenStore) Register(ctx context.Context, userID, token, deviceInfo string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO device_tokens (user_id, token, device_info)
		VALUES ($1, $2, $3)
		ON CONFLICT (token) DO UPDATE SET user_id = $1, device_info = $3
	`, userID, token, deviceInfo)
	if err != nil {
		return fmt.Errorf("register device token: %w", err)
	}
	return nil
}

// Remove deletes a token owned by the user.
func (s *TokenStore) Remove(ctx context.Context, userID, token string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM device_tokens WHERE user_id = $1 AND token = $2`, userID, token)
	if err != nil {
		return fmt.Errorf("remove device token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("device token not found")
	}
	return nil
}

// Invalidate deletes a token regardless of owner. Used to prune tokens the
// push provider reports as unregistered; a missing row is not an error.
func (s *TokenStore) Invalidate(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM device_tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("invalidate device token: %w", err)
	}
	return nil
}
