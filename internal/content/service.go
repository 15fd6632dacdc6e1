package content

import (
	"context"
	"strings"

	"github.com/aditya-4747/VideoStreamAPI/internal/logging"
	"github.com/aditya-4747/VideoStreamAPI/internal/metrics"
	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
	"github.com/aditya-4747/VideoStreamAPI/pkg/models"
)

// VideoStore persists videos and comments.
type VideoStore interface {
	CreateVideo(ctx context.Context, video *models.Video) error
	GetVideo(ctx context.Context, id string) (*models.Video, error)
	UpdateVideoDetails(ctx context.Context, id, title, description string) (*models.Video, error)
	UpdateVideoThumbnail(ctx context.Context, id, thumbnailURL, thumbnailKey string) (*models.Video, error)
	TogglePublishStatus(ctx context.Context, id string) (*models.Video, error)
	IncrementViews(ctx context.Context, id string) error
	DeleteVideo(ctx context.Context, id string) error

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id string) (*models.Comment, error)
	UpdateComment(ctx context.Context, id, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	VideoExists(ctx context.Context, id string) (bool, error)
}

// MediaStore uploads and deletes stored media objects.
type MediaStore interface {
	UploadFile(ctx context.Context, category, localPath, filename string) (*models.MediaObject, error)
	Delete(ctx context.Context, key string) error
}

// VideoCache caches full video records by ID.
type VideoCache interface {
	GetVideo(ctx context.Context, videoID string) (*models.Video, error)
	SetVideo(ctx context.Context, video *models.Video) error
	DeleteVideo(ctx context.Context, videoID string) error
}

// StatsInvalidator drops cached channel stats after a mutation that
// changes a channel's video or view counts.
type StatsInvalidator interface {
	InvalidateChannelStats(ctx context.Context, channelID string) error
}

// PublishInput carries the fields and uploaded file paths for a new
// video. Duration is taken from the upload form; the media store does
// no probing of the file itself.
type PublishInput struct {
	Title         string
	Description   string
	Duration      float64
	VideoPath     string
	VideoName     string
	VideoSize     int64
	ThumbnailPath string
	ThumbnailName string
}

// Service implements video and comment lifecycle operations.
type Service struct {
	store VideoStore
	media MediaStore
	cache VideoCache
	stats StatsInvalidator
	log   *logging.Logger
}

// NewService creates a content service
func NewService(store VideoStore, media MediaStore, cache VideoCache, stats StatsInvalidator, log *logging.Logger) *Service {
	return &Service{
		store: store,
		media: media,
		cache: cache,
		stats: stats,
		log:   log,
	}
}

// PublishVideo uploads the media objects and creates the video record,
// published immediately.
func (s *Service) PublishVideo(ctx context.Context, ownerID string, input PublishInput) (*models.Video, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperr.New(apperr.KindValidation, "title and description are required")
	}
	if input.VideoPath == "" || input.ThumbnailPath == "" {
		return nil, apperr.New(apperr.KindValidation, "video file and thumbnail are required")
	}

	videoObj, err := s.media.UploadFile(ctx, "videos", input.VideoPath, input.VideoName)
	if err != nil {
		metrics.VideoUploadsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	thumbObj, err := s.media.UploadFile(ctx, "thumbnails", input.ThumbnailPath, input.ThumbnailName)
	if err != nil {
		metrics.VideoUploadsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	video := &models.Video{
		OwnerID:      ownerID,
		Title:        title,
		Description:  description,
		VideoURL:     videoObj.URL,
		VideoKey:     videoObj.Key,
		Thumbnail:    thumbObj.URL,
		ThumbnailKey: thumbObj.Key,
		Duration:     input.Duration,
		IsPublished:  true,
	}

	if err := s.store.CreateVideo(ctx, video); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)
	metrics.VideoUploadsTotal.WithLabelValues("success").Inc()
	metrics.VideoUploadSizeBytes.Observe(float64(input.VideoSize))
	s.log.WithVideoID(video.ID).WithUserID(ownerID).Info("video published")
	return video, nil
}

// GetVideo fetches a video and counts the view. Cache hits still
// increment the stored view counter.
func (s *Service) GetVideo(ctx context.Context, videoID string) (*models.Video, error) {
	if videoID == "" {
		return nil, apperr.New(apperr.KindValidation, "video ID is required")
	}

	var video *models.Video
	if s.cache != nil {
		cached, err := s.cache.GetVideo(ctx, videoID)
		if err != nil {
			s.log.WithError(err).WithVideoID(videoID).Warn("video cache read failed")
		} else if cached != nil {
			video = cached
		}
	}

	if video == nil {
		var err error
		video, err = s.store.GetVideo(ctx, videoID)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.SetVideo(ctx, video); err != nil {
				s.log.WithError(err).WithVideoID(videoID).Warn("video cache write failed")
			}
		}
	}

	if err := s.store.IncrementViews(ctx, videoID); err != nil {
		s.log.WithError(err).WithVideoID(videoID).Warn("failed to increment views")
	} else {
		video.Views++
	}

	return video, nil
}

// UpdateVideoDetails changes title and/or description, owner only.
func (s *Service) UpdateVideoDetails(ctx context.Context, userID, videoID, title, description string) (*models.Video, error) {
	if title == "" && description == "" {
		return nil, apperr.New(apperr.KindValidation, "title or description is required")
	}

	if _, err := s.requireVideoOwner(ctx, userID, videoID); err != nil {
		return nil, err
	}

	video, err := s.store.UpdateVideoDetails(ctx, videoID, title, description)
	if err != nil {
		return nil, err
	}

	s.dropCachedVideo(ctx, videoID)
	return video, nil
}

// UpdateThumbnail replaces the thumbnail media object, owner only. The
// previous thumbnail object is removed from storage.
func (s *Service) UpdateThumbnail(ctx context.Context, userID, videoID, localPath, filename string) (*models.Video, error) {
	if localPath == "" {
		return nil, apperr.New(apperr.KindValidation, "thumbnail file is required")
	}

	current, err := s.requireVideoOwner(ctx, userID, videoID)
	if err != nil {
		return nil, err
	}

	thumbObj, err := s.media.UploadFile(ctx, "thumbnails", localPath, filename)
	if err != nil {
		return nil, err
	}

	video, err := s.store.UpdateVideoThumbnail(ctx, videoID, thumbObj.URL, thumbObj.Key)
	if err != nil {
		return nil, err
	}

	if current.ThumbnailKey != "" {
		if err := s.media.Delete(ctx, current.ThumbnailKey); err != nil {
			s.log.WithError(err).WithVideoID(videoID).Warn("failed to delete old thumbnail")
		}
	}

	s.dropCachedVideo(ctx, videoID)
	return video, nil
}

// TogglePublishStatus flips a video between published and hidden,
// owner only. The flip happens in a single store statement so
// concurrent toggles cannot lose an update.
func (s *Service) TogglePublishStatus(ctx context.Context, userID, videoID string) (*models.Video, error) {
	if _, err := s.requireVideoOwner(ctx, userID, videoID); err != nil {
		return nil, err
	}

	video, err := s.store.TogglePublishStatus(ctx, videoID)
	if err != nil {
		return nil, err
	}

	s.dropCachedVideo(ctx, videoID)
	s.invalidateStats(ctx, video.OwnerID)
	return video, nil
}

// DeleteVideo removes the video record and its media objects, owner
// only.
func (s *Service) DeleteVideo(ctx context.Context, userID, videoID string) error {
	video, err := s.requireVideoOwner(ctx, userID, videoID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteVideo(ctx, videoID); err != nil {
		return err
	}

	for _, key := range []string{video.VideoKey, video.ThumbnailKey} {
		if key == "" {
			continue
		}
		if err := s.media.Delete(ctx, key); err != nil {
			s.log.WithError(err).WithVideoID(videoID).Warn("failed to delete media object")
		}
	}

	s.dropCachedVideo(ctx, videoID)
	s.invalidateStats(ctx, video.OwnerID)
	s.log.WithVideoID(videoID).WithUserID(userID).Info("video deleted")
	return nil
}

// AddComment creates a comment on a video. One comment per user per
// video; a second attempt conflicts.
func (s *Service) AddComment(ctx context.Context, userID, videoID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.New(apperr.KindValidation, "comment content is required")
	}

	exists, err := s.store.VideoExists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.New(apperr.KindNotFound, "video does not exist")
	}

	comment := &models.Comment{
		VideoID: videoID,
		OwnerID: userID,
		Content: content,
	}

	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// UpdateComment edits a comment's content, owner only.
func (s *Service) UpdateComment(ctx context.Context, userID, commentID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.New(apperr.KindValidation, "comment content is required")
	}

	if err := s.requireCommentOwner(ctx, userID, commentID); err != nil {
		return nil, err
	}

	return s.store.UpdateComment(ctx, commentID, content)
}

// RemoveComment deletes a comment, owner only.
func (s *Service) RemoveComment(ctx context.Context, userID, commentID string) error {
	if err := s.requireCommentOwner(ctx, userID, commentID); err != nil {
		return err
	}

	return s.store.DeleteComment(ctx, commentID)
}

func (s *Service) requireVideoOwner(ctx context.Context, userID, videoID string) (*models.Video, error) {
	video, err := s.store.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != userID {
		return nil, apperr.New(apperr.KindForbidden, "only the owner may modify a video")
	}
	return video, nil
}

func (s *Service) requireCommentOwner(ctx context.Context, userID, commentID string) error {
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.OwnerID != userID {
		return apperr.New(apperr.KindForbidden, "only the owner may modify a comment")
	}
	return nil
}

func (s *Service) dropCachedVideo(ctx context.Context, videoID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteVideo(ctx, videoID); err != nil {
		s.log.WithError(err).WithVideoID(videoID).Warn("failed to drop cached video")
	}
}

func (s *Service) invalidateStats(ctx context.Context, channelID string) {
	if s.stats == nil {
		return
	}
	if err := s.stats.InvalidateChannelStats(ctx, channelID); err != nil {
		s.log.WithError(err).WithChannelID(channelID).Warn("failed to invalidate channel stats")
	}
}
