package content

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aditya-4747/VideoStreamAPI/internal/logging"
	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
	"github.com/aditya-4747/VideoStreamAPI/pkg/models"
)

type fakeVideoStore struct {
	videos   map[string]*models.Video
	comments map[string]*models.Comment
	nextID   int
}

func newFakeVideoStore() *fakeVideoStore {
	return &fakeVideoStore{
		videos:   make(map[string]*models.Video),
		comments: make(map[string]*models.Comment),
	}
}

func (f *fakeVideoStore) id(prefix string) string {
	f.nextID++
	return prefix + "-" + strconv.Itoa(f.nextID)
}

func (f *fakeVideoStore) CreateVideo(_ context.Context, video *models.Video) error {
	video.ID = f.id("video")
	f.videos[video.ID] = video
	return nil
}

func (f *fakeVideoStore) GetVideo(_ context.Context, id string) (*models.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "video does not exist")
	}
	copied := *v
	return &copied, nil
}

func (f *fakeVideoStore) VideoExists(_ context.Context, id string) (bool, error) {
	_, ok := f.videos[id]
	return ok, nil
}

func (f *fakeVideoStore) UpdateVideoDetails(_ context.Context, id, title, description string) (*models.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "video does not exist")
	}
	if title != "" {
		v.Title = title
	}
	if description != "" {
		v.Description = description
	}
	return v, nil
}

func (f *fakeVideoStore) UpdateVideoThumbnail(_ context.Context, id, thumbnailURL, thumbnailKey string) (*models.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "video does not exist")
	}
	v.Thumbnail = thumbnailURL
	v.ThumbnailKey = thumbnailKey
	return v, nil
}

func (f *fakeVideoStore) TogglePublishStatus(_ context.Context, id string) (*models.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "video does not exist")
	}
	v.IsPublished = !v.IsPublished
	return v, nil
}

func (f *fakeVideoStore) IncrementViews(_ context.Context, id string) error {
	v, ok := f.videos[id]
	if !ok {
		return apperr.New(apperr.KindNotFound, "video does not exist")
	}
	v.Views++
	return nil
}

func (f *fakeVideoStore) DeleteVideo(_ context.Context, id string) error {
	if _, ok := f.videos[id]; !ok {
		return apperr.New(apperr.KindNotFound, "video does not exist")
	}
	delete(f.videos, id)
	return nil
}

func (f *fakeVideoStore) CreateComment(_ context.Context, comment *models.Comment) error {
	for _, c := range f.comments {
		if c.VideoID == comment.VideoID && c.OwnerID == comment.OwnerID {
			return apperr.New(apperr.KindConflict, "a comment already exists")
		}
	}
	comment.ID = f.id("comment")
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeVideoStore) GetComment(_ context.Context, id string) (*models.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "comment does not exist")
	}
	return c, nil
}

func (f *fakeVideoStore) UpdateComment(_ context.Context, id, content string) (*models.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "comment does not exist")
	}
	c.Content = content
	return c, nil
}

func (f *fakeVideoStore) DeleteComment(_ context.Context, id string) error {
	if _, ok := f.comments[id]; !ok {
		return apperr.New(apperr.KindNotFound, "comment does not exist")
	}
	delete(f.comments, id)
	return nil
}

type fakeMedia struct {
	uploaded []string
	deleted  []string
}

func (f *fakeMedia) UploadFile(_ context.Context, category, localPath, filename string) (*models.MediaObject, error) {
	key := category + "/" + filename
	f.uploaded = append(f.uploaded, key)
	return &models.MediaObject{URL: "http://media.test/" + key, Key: key}, nil
}

func (f *fakeMedia) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type fakeContentInvalidator struct {
	channels []string
}

func (f *fakeContentInvalidator) InvalidateChannelStats(_ context.Context, channelID string) error {
	f.channels = append(f.channels, channelID)
	return nil
}

func newContentService() (*Service, *fakeVideoStore, *fakeMedia, *fakeContentInvalidator) {
	store := newFakeVideoStore()
	media := &fakeMedia{}
	inv := &fakeContentInvalidator{}
	svc := NewService(store, media, nil, inv, logging.NewDefault())
	return svc, store, media, inv
}

func publishTestVideo(t *testing.T, svc *Service, ownerID string) *models.Video {
	t.Helper()
	video, err := svc.PublishVideo(context.Background(), ownerID, PublishInput{
		Title:         "my video",
		Description:   "a video",
		Duration:      42.5,
		VideoPath:     "/tmp/clip.mp4",
		VideoName:     "clip.mp4",
		VideoSize:     1 << 20,
		ThumbnailPath: "/tmp/thumb.png",
		ThumbnailName: "thumb.png",
	})
	require.NoError(t, err)
	return video
}

func TestPublishVideo(t *testing.T) {
	svc, _, media, inv := newContentService()

	video := publishTestVideo(t, svc, "alice")
	assert.True(t, video.IsPublished)
	assert.Equal(t, 42.5, video.Duration)
	assert.Equal(t, []string{"videos/clip.mp4", "thumbnails/thumb.png"}, media.uploaded)
	assert.Equal(t, []string{"alice"}, inv.channels)
}

func TestPublishVideoValidation(t *testing.T) {
	svc, _, _, _ := newContentService()

	_, err := svc.PublishVideo(context.Background(), "alice", PublishInput{
		Title:       "no media",
		Description: "missing files",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestGetVideoCountsView(t *testing.T) {
	svc, store, _, _ := newContentService()
	video := publishTestVideo(t, svc, "alice")

	got, err := svc.GetVideo(context.Background(), video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)
	assert.Equal(t, int64(1), store.videos[video.ID].Views)

	got, err = svc.GetVideo(context.Background(), video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)
}

func TestVideoOwnerOnly(t *testing.T) {
	svc, _, _, _ := newContentService()
	video := publishTestVideo(t, svc, "alice")
	ctx := context.Background()

	_, err := svc.UpdateVideoDetails(ctx, "bob", video.ID, "hijacked", "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.TogglePublishStatus(ctx, "bob", video.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	err = svc.DeleteVideo(ctx, "bob", video.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestTogglePublishStatus(t *testing.T) {
	svc, _, _, inv := newContentService()
	video := publishTestVideo(t, svc, "alice")
	ctx := context.Background()

	got, err := svc.TogglePublishStatus(ctx, "alice", video.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPublished)

	got, err = svc.TogglePublishStatus(ctx, "alice", video.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPublished)

	// publish + two toggles each touch the owner's stats
	assert.Equal(t, []string{"alice", "alice", "alice"}, inv.channels)
}

func TestDeleteVideoRemovesMedia(t *testing.T) {
	svc, store, media, _ := newContentService()
	video := publishTestVideo(t, svc, "alice")

	require.NoError(t, svc.DeleteVideo(context.Background(), "alice", video.ID))
	assert.Empty(t, store.videos)
	assert.ElementsMatch(t, []string{"videos/clip.mp4", "thumbnails/thumb.png"}, media.deleted)
}

func TestUpdateThumbnailReplacesObject(t *testing.T) {
	svc, _, media, _ := newContentService()
	video := publishTestVideo(t, svc, "alice")

	got, err := svc.UpdateThumbnail(context.Background(), "alice", video.ID, "/tmp/new.png", "new.png")
	require.NoError(t, err)
	assert.Equal(t, "thumbnails/new.png", got.ThumbnailKey)
	assert.Equal(t, []string{"thumbnails/thumb.png"}, media.deleted)
}

func TestCommentLifecycle(t *testing.T) {
	svc, _, _, _ := newContentService()
	video := publishTestVideo(t, svc, "alice")
	ctx := context.Background()

	comment, err := svc.AddComment(ctx, "bob", video.ID, "nice one")
	require.NoError(t, err)
	assert.Equal(t, "bob", comment.OwnerID)

	// one comment per user per video
	_, err = svc.AddComment(ctx, "bob", video.ID, "again")
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// a different user may still comment
	_, err = svc.AddComment(ctx, "carol", video.ID, "hello")
	require.NoError(t, err)

	updated, err := svc.UpdateComment(ctx, "bob", comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	_, err = svc.UpdateComment(ctx, "carol", comment.ID, "not mine")
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	err = svc.RemoveComment(ctx, "carol", comment.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	require.NoError(t, svc.RemoveComment(ctx, "bob", comment.ID))
}

func TestAddCommentUnknownVideo(t *testing.T) {
	svc, _, _, _ := newContentService()

	_, err := svc.AddComment(context.Background(), "bob", "missing", "hi")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCommentValidation(t *testing.T) {
	svc, _, _, _ := newContentService()
	video := publishTestVideo(t, svc, "alice")

	_, err := svc.AddComment(context.Background(), "bob", video.ID, "   ")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
