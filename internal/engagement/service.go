package engagement

import (
	"context"
	"strings"

	"github.com/aditya-4747/VideoStreamAPI/internal/logging"
	"github.com/aditya-4747/VideoStreamAPI/internal/metrics"
	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
	"github.com/aditya-4747/VideoStreamAPI/pkg/models"
)

// Repository persists the graph relations. Toggle implementations must
// be atomic: uniqueness is enforced by the store, never by a
// read-then-write in this service.
type Repository interface {
	ToggleSubscription(ctx context.Context, subscriberID, channelID string) (bool, error)
	ToggleLike(ctx context.Context, userID string, target models.LikeTarget) (bool, error)
	Subscribers(ctx context.Context, channelID string) ([]string, error)
	Subscriptions(ctx context.Context, userID string) ([]string, error)

	CreatePlaylist(ctx context.Context, playlist *models.Playlist) error
	GetPlaylist(ctx context.Context, id string) (*models.Playlist, error)
	UpdatePlaylist(ctx context.Context, id, name, description string) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, id string) error
	PlaylistsByOwner(ctx context.Context, ownerID string) ([]*models.Playlist, error)
	AddPlaylistVideos(ctx context.Context, playlistID string, videoIDs []string) error
	RemovePlaylistVideos(ctx context.Context, playlistID string, videoIDs []string) error
}

// EntityChecker answers existence questions about the entities a
// relation may reference.
type EntityChecker interface {
	UserExists(ctx context.Context, id string) (bool, error)
	VideoExists(ctx context.Context, id string) (bool, error)
	CommentExists(ctx context.Context, id string) (bool, error)
}

// StatsInvalidator drops cached derived views when the relations that
// feed them change.
type StatsInvalidator interface {
	InvalidateChannelStats(ctx context.Context, channelID string) error
}

// Service implements subscription, like and playlist operations.
type Service struct {
	repo     Repository
	entities EntityChecker
	stats    StatsInvalidator
	log      *logging.Logger
}

// NewService creates an engagement service
func NewService(repo Repository, entities EntityChecker, stats StatsInvalidator, log *logging.Logger) *Service {
	return &Service{
		repo:     repo,
		entities: entities,
		stats:    stats,
		log:      log,
	}
}

// ToggleSubscription subscribes the user to a channel or, if already
// subscribed, removes the subscription. Self-subscription is rejected
// before any store access.
func (s *Service) ToggleSubscription(ctx context.Context, subscriberID, channelID string) (*models.ToggleResult, error) {
	if channelID == "" {
		return nil, apperr.New(apperr.KindValidation, "channel ID is required")
	}
	if subscriberID == channelID {
		return nil, apperr.New(apperr.KindForbidden, "cannot subscribe to own channel")
	}

	exists, err := s.entities.UserExists(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.New(apperr.KindNotFound, "channel does not exist")
	}

	added, err := s.repo.ToggleSubscription(ctx, subscriberID, channelID)
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		if err := s.stats.InvalidateChannelStats(ctx, channelID); err != nil {
			s.log.WithError(err).WithChannelID(channelID).Warn("failed to invalidate channel stats")
		}
	}

	metrics.SubscriptionTogglesTotal.WithLabelValues(metrics.ToggleAction(added)).Inc()
	s.log.LogToggle("subscription", subscriberID, channelID, added)
	return &models.ToggleResult{Added: added}, nil
}

// ToggleLike likes the target or removes an existing like. The target
// entity must exist; otherwise nothing is written.
func (s *Service) ToggleLike(ctx context.Context, userID string, target models.LikeTarget) (*models.ToggleResult, error) {
	if target.ID == "" {
		return nil, apperr.New(apperr.KindValidation, "target ID is required")
	}

	var (
		exists bool
		err    error
	)
	switch target.Kind {
	case models.LikeTargetVideo:
		exists, err = s.entities.VideoExists(ctx, target.ID)
	case models.LikeTargetComment:
		exists, err = s.entities.CommentExists(ctx, target.ID)
	default:
		return nil, apperr.New(apperr.KindValidation, "unknown like target kind")
	}
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.New(apperr.KindNotFound, "%s does not exist", string(target.Kind))
	}

	added, err := s.repo.ToggleLike(ctx, userID, target)
	if err != nil {
		return nil, err
	}

	metrics.LikeTogglesTotal.WithLabelValues(string(target.Kind), metrics.ToggleAction(added)).Inc()
	s.log.LogToggle("like:"+string(target.Kind), userID, target.ID, added)
	return &models.ToggleResult{Added: added}, nil
}

// Subscribers lists the user IDs subscribed to a channel
func (s *Service) Subscribers(ctx context.Context, channelID string) ([]string, error) {
	if channelID == "" {
		return nil, apperr.New(apperr.KindValidation, "channel ID is required")
	}
	return s.repo.Subscribers(ctx, channelID)
}

// Subscriptions lists the channel IDs a user subscribes to
func (s *Service) Subscriptions(ctx context.Context, userID string) ([]string, error) {
	return s.repo.Subscriptions(ctx, userID)
}

// CreatePlaylist creates a playlist owned by the given user
func (s *Service) CreatePlaylist(ctx context.Context, ownerID, name, description string) (*models.Playlist, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return nil, apperr.New(apperr.KindValidation, "both name and description are required")
	}

	playlist := &models.Playlist{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
	}

	if err := s.repo.CreatePlaylist(ctx, playlist); err != nil {
		return nil, err
	}

	return playlist, nil
}

// GetPlaylist fetches a playlist by ID
func (s *Service) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	return s.repo.GetPlaylist(ctx, id)
}

// UserPlaylists lists the playlists a user owns
func (s *Service) UserPlaylists(ctx context.Context, ownerID string) ([]*models.Playlist, error) {
	if ownerID == "" {
		return nil, apperr.New(apperr.KindValidation, "user ID is required")
	}
	return s.repo.PlaylistsByOwner(ctx, ownerID)
}

// UpdatePlaylist changes playlist metadata, owner only
func (s *Service) UpdatePlaylist(ctx context.Context, userID, playlistID, name, description string) (*models.Playlist, error) {
	if name == "" && description == "" {
		return nil, apperr.New(apperr.KindValidation, "name or description is required")
	}

	if err := s.requireOwner(ctx, userID, playlistID); err != nil {
		return nil, err
	}

	return s.repo.UpdatePlaylist(ctx, playlistID, name, description)
}

// DeletePlaylist removes a playlist, owner only
func (s *Service) DeletePlaylist(ctx context.Context, userID, playlistID string) error {
	if err := s.requireOwner(ctx, userID, playlistID); err != nil {
		return err
	}

	return s.repo.DeletePlaylist(ctx, playlistID)
}

// AddVideos appends videos to a playlist. The batch is all-or-nothing:
// a single duplicate rejects the entire request.
func (s *Service) AddVideos(ctx context.Context, userID, playlistID string, videoIDs []string) (*models.Playlist, error) {
	if len(videoIDs) == 0 {
		return nil, apperr.New(apperr.KindValidation, "array of video IDs is expected")
	}

	if err := s.requireOwner(ctx, userID, playlistID); err != nil {
		return nil, err
	}

	for _, videoID := range videoIDs {
		exists, err := s.entities.VideoExists(ctx, videoID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.New(apperr.KindNotFound, "video does not exist")
		}
	}

	if err := s.repo.AddPlaylistVideos(ctx, playlistID, videoIDs); err != nil {
		return nil, err
	}

	return s.repo.GetPlaylist(ctx, playlistID)
}

// RemoveVideos removes videos from a playlist. The batch is
// all-or-nothing: a single absent member rejects the entire request.
func (s *Service) RemoveVideos(ctx context.Context, userID, playlistID string, videoIDs []string) (*models.Playlist, error) {
	if len(videoIDs) == 0 {
		return nil, apperr.New(apperr.KindValidation, "array of video IDs is expected")
	}

	if err := s.requireOwner(ctx, userID, playlistID); err != nil {
		return nil, err
	}

	if err := s.repo.RemovePlaylistVideos(ctx, playlistID, videoIDs); err != nil {
		return nil, err
	}

	return s.repo.GetPlaylist(ctx, playlistID)
}

func (s *Service) requireOwner(ctx context.Context, userID, playlistID string) error {
	playlist, err := s.repo.GetPlaylist(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.OwnerID != userID {
		return apperr.New(apperr.KindForbidden, "only the owner may modify a playlist")
	}
	return nil
}
