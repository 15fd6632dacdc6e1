package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
	"github.com/aditya-4747/VideoStreamAPI/pkg/models"
)

const userColumns = `id, username, email, full_name, avatar, avatar_key, cover_image, cover_key,
	       password_hash, refresh_token, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.Avatar, &user.AvatarKey,
		&user.CoverImage, &user.CoverKey, &user.PasswordHash, &user.RefreshToken,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a new user record
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	query := `
		INSERT INTO users (id, username, email, full_name, avatar, avatar_key, cover_image, cover_key, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.FullName, user.Avatar, user.AvatarKey,
		user.CoverImage, user.CoverKey, user.PasswordHash,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if isUniqueViolation(err) {
		return apperr.New(apperr.KindConflict, "user with username or email already exists")
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by ID
func (r *Repository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.Pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, apperr.New(apperr.KindNotFound, "user does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetUserByUsernameOrEmail retrieves a user whose username or email
// equals the given identifier. Identifiers are stored lowercased, the
// caller normalizes before lookup.
func (r *Repository) GetUserByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1 OR email = $1`, userColumns)

	user, err := scanUser(r.db.Pool.QueryRow(ctx, query, identifier))
	if err == pgx.ErrNoRows {
		return nil, apperr.New(apperr.KindNotFound, "user does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// UserExistsByUsernameOrEmail reports whether any user holds the given
// username or email.
func (r *Repository) UserExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, username, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

// UserExists reports whether a user with the given ID exists
func (r *Repository) UserExists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

// SetRefreshToken unconditionally overwrites the user's refresh
// credential slot. Used on login, where supersession is intended.
func (r *Repository) SetRefreshToken(ctx context.Context, userID, token string) error {
	query := `UPDATE users SET refresh_token = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, userID, token)
	if err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.KindNotFound, "user does not exist")
	}

	return nil
}

// RotateRefreshToken swaps the stored refresh credential for a new one
// only if the presented token still matches the slot. The conditional
// UPDATE is the compare-and-swap that makes rotation race-free: when
// two refreshes race, exactly one matches and wins.
func (r *Repository) RotateRefreshToken(ctx context.Context, userID, presented, replacement string) (bool, error) {
	query := `
		UPDATE users
		SET refresh_token = $3, updated_at = now()
		WHERE id = $1 AND refresh_token = $2
	`

	tag, err := r.db.Pool.Exec(ctx, query, userID, presented, replacement)
	if err != nil {
		return false, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// ClearRefreshToken empties the user's refresh credential slot
func (r *Repository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `UPDATE users SET refresh_token = NULL, updated_at = now() WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.KindNotFound, "user does not exist")
	}

	return nil
}
