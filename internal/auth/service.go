package auth

import (
	"context"
	"strings"

	"github.com/aditya-4747/VideoStreamAPI/internal/logging"
	"github.com/aditya-4747/VideoStreamAPI/internal/metrics"
	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
	"github.com/aditya-4747/VideoStreamAPI/pkg/models"
)

// UserStore persists user records and the single refresh-credential
// slot each user carries.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error)
	UserExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	SetRefreshToken(ctx context.Context, userID, token string) error
	RotateRefreshToken(ctx context.Context, userID, presented, replacement string) (bool, error)
	ClearRefreshToken(ctx context.Context, userID string) error
}

// MediaUploader uploads a local file to the media store and returns its
// public URL and object key.
type MediaUploader interface {
	UploadFile(ctx context.Context, category, localPath, filename string) (*models.MediaObject, error)
}

// RegisterInput carries the fields and uploaded file paths for
// registration. Avatar is required; cover image is optional.
type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	AvatarPath string
	AvatarName string
	CoverPath  string
	CoverName  string
}

// Service orchestrates registration, login, refresh rotation and
// logout on top of the user store and token manager.
type Service struct {
	users  UserStore
	tokens *TokenManager
	media  MediaUploader
	log    *logging.Logger
}

// NewService creates an auth service
func NewService(users UserStore, tokens *TokenManager, media MediaUploader, log *logging.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		media:  media,
		log:    log,
	}
}

// Register creates a new user after uniqueness and field validation.
// Username and email are stored lowercased.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))
	fullName := strings.TrimSpace(input.FullName)

	if username == "" || email == "" || fullName == "" || input.Password == "" {
		return nil, apperr.New(apperr.KindValidation, "username, email, full name and password are required")
	}
	if input.AvatarPath == "" {
		return nil, apperr.New(apperr.KindValidation, "avatar is required")
	}

	exists, err := s.users.UserExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.KindConflict, "user with username or email already exists")
	}

	hash, err := s.tokens.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	avatar, err := s.media.UploadFile(ctx, "avatars", input.AvatarPath, input.AvatarName)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		Avatar:       avatar.URL,
		AvatarKey:    avatar.Key,
		PasswordHash: hash,
	}

	if input.CoverPath != "" {
		cover, err := s.media.UploadFile(ctx, "covers", input.CoverPath, input.CoverName)
		if err != nil {
			return nil, err
		}
		user.CoverImage = cover.URL
		user.CoverKey = cover.Key
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithUserID(user.ID).Info("user registered")
	return user, nil
}

// Login verifies credentials and issues a fresh token pair. The stored
// refresh credential is overwritten, invalidating any prior one.
func (s *Service) Login(ctx context.Context, identifier, password string) (*models.User, *models.TokenPair, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" || password == "" {
		return nil, nil, apperr.New(apperr.KindValidation, "username or email and password are required")
	}

	user, err := s.users.GetUserByUsernameOrEmail(ctx, identifier)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, nil, err
	}

	if !s.tokens.CheckPassword(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, nil, apperr.New(apperr.KindUnauthorized, "password is incorrect")
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	// Single slot: login unconditionally supersedes any outstanding
	// refresh token for this user.
	if err := s.users.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.WithUserID(user.ID).Info("user logged in")
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new pair, rotating the
// stored credential. The rotation is a store-level compare-and-swap:
// if the presented token no longer matches the stored slot the request
// fails, which is what makes a refresh token single-use.
func (s *Service) Refresh(ctx context.Context, presented string) (*models.TokenPair, error) {
	if presented == "" {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return nil, apperr.New(apperr.KindUnauthorized, "refresh token is required")
	}

	claims, err := s.tokens.VerifyToken(presented, TokenKindRefresh)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		if apperr.IsNotFound(err) {
			return nil, apperr.New(apperr.KindUnauthorized, "invalid refresh token")
		}
		return nil, err
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, err
	}

	rotated, err := s.users.RotateRefreshToken(ctx, user.ID, presented, pair.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !rotated {
		// Superseded or cleared credential: replay of an old token.
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return nil, apperr.New(apperr.KindUnauthorized, "refresh token has been superseded")
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	s.log.WithUserID(user.ID).Info("refresh token rotated")
	return pair, nil
}

// Logout clears the user's refresh credential. Subsequent refresh
// attempts fail until the next login. A token whose subject no longer
// exists is rejected rather than silently succeeding.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if err := s.users.ClearRefreshToken(ctx, userID); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.New(apperr.KindUnauthorized, "invalid access token")
		}
		return err
	}

	s.log.WithUserID(userID).Info("user logged out")
	return nil
}

// CurrentUser loads the profile of an authenticated user.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

func (s *Service) issuePair(userID string) (*models.TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(userID)
	if err != nil {
		return nil, err
	}

	refresh, err := s.tokens.IssueRefreshToken(userID)
	if err != nil {
		return nil, err
	}

	return &models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
