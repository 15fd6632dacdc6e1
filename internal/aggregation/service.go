package aggregation

import (
	"context"

	"github.com/aditya-4747/VideoStreamAPI/internal/logging"
	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
	"github.com/aditya-4747/VideoStreamAPI/pkg/models"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// Repository runs the read-time aggregation queries.
type Repository interface {
	ChannelStats(ctx context.Context, channelID, viewerID string) (*models.ChannelStats, error)
	ChannelVideos(ctx context.Context, channelID string, limit, offset int) ([]*models.VideoSummary, error)
	SearchVideos(ctx context.Context, filter models.VideoFilter) ([]*models.VideoSummary, error)
	LikedVideos(ctx context.Context, userID string) ([]*models.VideoSummary, error)
	LikeCount(ctx context.Context, targetID string) (int64, error)
	CommentsOf(ctx context.Context, videoID string, limit, offset int) ([]*models.Comment, error)
	VideoExists(ctx context.Context, id string) (bool, error)
	UserExists(ctx context.Context, id string) (bool, error)
}

// StatsCache caches channel stats per (channel, viewer) pair.
type StatsCache interface {
	GetChannelStats(ctx context.Context, channelID, viewerID string) (*models.ChannelStats, error)
	SetChannelStats(ctx context.Context, viewerID string, stats *models.ChannelStats) error
}

// Service computes channel dashboards, feeds and comment listings.
// Everything here is derived at read time; nothing is materialized.
type Service struct {
	repo  Repository
	cache StatsCache
	log   *logging.Logger
}

// NewService creates an aggregation service
func NewService(repo Repository, cache StatsCache, log *logging.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ChannelStats returns the derived profile of a channel. The viewer ID
// may be empty for anonymous requests, in which case IsSubscribed is
// always false.
func (s *Service) ChannelStats(ctx context.Context, channelID, viewerID string) (*models.ChannelStats, error) {
	if channelID == "" {
		return nil, apperr.New(apperr.KindValidation, "channel ID is required")
	}

	if s.cache != nil {
		cached, err := s.cache.GetChannelStats(ctx, channelID, viewerID)
		if err != nil {
			s.log.WithError(err).WithChannelID(channelID).Warn("stats cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	stats, err := s.repo.ChannelStats(ctx, channelID, viewerID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetChannelStats(ctx, viewerID, stats); err != nil {
			s.log.WithError(err).WithChannelID(channelID).Warn("stats cache write failed")
		}
	}

	return stats, nil
}

// ChannelVideos lists a channel's published videos, newest first. An
// empty page past the end of the listing is reported as not found.
func (s *Service) ChannelVideos(ctx context.Context, channelID string, page, pageSize int) ([]*models.VideoSummary, error) {
	if channelID == "" {
		return nil, apperr.New(apperr.KindValidation, "channel ID is required")
	}

	exists, err := s.repo.UserExists(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.New(apperr.KindNotFound, "channel does not exist")
	}

	page, pageSize = clampPage(page, pageSize)
	videos, err := s.repo.ChannelVideos(ctx, channelID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, apperr.New(apperr.KindNotFound, "no videos found for this page")
	}

	return videos, nil
}

// SearchVideos runs the published-video feed query. A search that
// matches nothing is a success with an empty result.
func (s *Service) SearchVideos(ctx context.Context, filter models.VideoFilter) ([]*models.VideoSummary, error) {
	if filter.SortBy == "" {
		filter.SortBy = models.SortByCreatedAt
	}
	if !models.ValidSortField(filter.SortBy) {
		return nil, apperr.New(apperr.KindValidation, "unknown sort field %q", string(filter.SortBy))
	}
	if filter.SortOrder == 0 {
		filter.SortOrder = models.SortDescending
	}
	filter.Page, filter.PageSize = clampPage(filter.Page, filter.PageSize)

	videos, err := s.repo.SearchVideos(ctx, filter)
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []*models.VideoSummary{}
	}
	return videos, nil
}

// LikedVideos lists the videos a user has liked
func (s *Service) LikedVideos(ctx context.Context, userID string) ([]*models.VideoSummary, error) {
	videos, err := s.repo.LikedVideos(ctx, userID)
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []*models.VideoSummary{}
	}
	return videos, nil
}

// LikeCount counts likes for a video or comment
func (s *Service) LikeCount(ctx context.Context, targetID string) (int64, error) {
	if targetID == "" {
		return 0, apperr.New(apperr.KindValidation, "target ID is required")
	}
	return s.repo.LikeCount(ctx, targetID)
}

// VideoComments lists a video's comments oldest first. An empty page is
// a success with an empty result; only an unknown video is an error.
func (s *Service) VideoComments(ctx context.Context, videoID string, page, pageSize int) ([]*models.Comment, error) {
	if videoID == "" {
		return nil, apperr.New(apperr.KindValidation, "video ID is required")
	}

	exists, err := s.repo.VideoExists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.New(apperr.KindNotFound, "video does not exist")
	}

	page, pageSize = clampPage(page, pageSize)
	comments, err := s.repo.CommentsOf(ctx, videoID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}

func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
