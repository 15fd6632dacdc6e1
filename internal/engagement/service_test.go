package engagement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aditya-4747/VideoStreamAPI/internal/logging"
	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
	"github.com/aditya-4747/VideoStreamAPI/pkg/models"
)

type fakeRepo struct {
	subscriptions map[string]bool // subscriberID|channelID
	likes         map[string]bool // userID|kind|targetID
	playlists     map[string]*models.Playlist
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		subscriptions: make(map[string]bool),
		likes:         make(map[string]bool),
		playlists:     make(map[string]*models.Playlist),
	}
}

func (f *fakeRepo) ToggleSubscription(_ context.Context, subscriberID, channelID string) (bool, error) {
	key := subscriberID + "|" + channelID
	if f.subscriptions[key] {
		delete(f.subscriptions, key)
		return false, nil
	}
	f.subscriptions[key] = true
	return true, nil
}

func (f *fakeRepo) ToggleLike(_ context.Context, userID string, target models.LikeTarget) (bool, error) {
	key := userID + "|" + string(target.Kind) + "|" + target.ID
	if f.likes[key] {
		delete(f.likes, key)
		return false, nil
	}
	f.likes[key] = true
	return true, nil
}

func (f *fakeRepo) Subscribers(_ context.Context, channelID string) ([]string, error) {
	var out []string
	for key := range f.subscriptions {
		if key[len(key)-len(channelID):] == channelID {
			out = append(out, key[:len(key)-len(channelID)-1])
		}
	}
	return out, nil
}

func (f *fakeRepo) Subscriptions(_ context.Context, userID string) ([]string, error) {
	var out []string
	for key := range f.subscriptions {
		if len(key) > len(userID) && key[:len(userID)+1] == userID+"|" {
			out = append(out, key[len(userID)+1:])
		}
	}
	return out, nil
}

func (f *fakeRepo) CreatePlaylist(_ context.Context, playlist *models.Playlist) error {
	playlist.ID = "pl-" + playlist.Name
	f.playlists[playlist.ID] = playlist
	return nil
}

func (f *fakeRepo) GetPlaylist(_ context.Context, id string) (*models.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "playlist does not exist")
	}
	return p, nil
}

func (f *fakeRepo) UpdatePlaylist(_ context.Context, id, name, description string) (*models.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "playlist does not exist")
	}
	if name != "" {
		p.Name = name
	}
	if description != "" {
		p.Description = description
	}
	return p, nil
}

func (f *fakeRepo) DeletePlaylist(_ context.Context, id string) error {
	if _, ok := f.playlists[id]; !ok {
		return apperr.New(apperr.KindNotFound, "playlist does not exist")
	}
	delete(f.playlists, id)
	return nil
}

func (f *fakeRepo) PlaylistsByOwner(_ context.Context, ownerID string) ([]*models.Playlist, error) {
	var out []*models.Playlist
	for _, p := range f.playlists {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) AddPlaylistVideos(_ context.Context, playlistID string, videoIDs []string) error {
	p, ok := f.playlists[playlistID]
	if !ok {
		return apperr.New(apperr.KindNotFound, "playlist does not exist")
	}
	existing := make(map[string]bool, len(p.VideoIDs))
	for _, id := range p.VideoIDs {
		existing[id] = true
	}
	for _, id := range videoIDs {
		if existing[id] {
			return apperr.New(apperr.KindConflict, "video already exists in the playlist")
		}
	}
	p.VideoIDs = append(p.VideoIDs, videoIDs...)
	return nil
}

func (f *fakeRepo) RemovePlaylistVideos(_ context.Context, playlistID string, videoIDs []string) error {
	p, ok := f.playlists[playlistID]
	if !ok {
		return apperr.New(apperr.KindNotFound, "playlist does not exist")
	}
	existing := make(map[string]bool, len(p.VideoIDs))
	for _, id := range p.VideoIDs {
		existing[id] = true
	}
	for _, id := range videoIDs {
		if !existing[id] {
			return apperr.New(apperr.KindNotFound, "video does not exist in playlist")
		}
	}
	kept := p.VideoIDs[:0]
	remove := make(map[string]bool, len(videoIDs))
	for _, id := range videoIDs {
		remove[id] = true
	}
	for _, id := range p.VideoIDs {
		if !remove[id] {
			kept = append(kept, id)
		}
	}
	p.VideoIDs = kept
	return nil
}

type fakeEntities struct {
	users    map[string]bool
	videos   map[string]bool
	comments map[string]bool
}

func (f *fakeEntities) UserExists(_ context.Context, id string) (bool, error) {
	return f.users[id], nil
}

func (f *fakeEntities) VideoExists(_ context.Context, id string) (bool, error) {
	return f.videos[id], nil
}

func (f *fakeEntities) CommentExists(_ context.Context, id string) (bool, error) {
	return f.comments[id], nil
}

type fakeInvalidator struct {
	invalidated []string
}

func (f *fakeInvalidator) InvalidateChannelStats(_ context.Context, channelID string) error {
	f.invalidated = append(f.invalidated, channelID)
	return nil
}

func newTestService() (*Service, *fakeRepo, *fakeEntities, *fakeInvalidator) {
	repo := newFakeRepo()
	entities := &fakeEntities{
		users:    map[string]bool{"alice": true, "bob": true},
		videos:   map[string]bool{"v1": true, "v2": true},
		comments: map[string]bool{"c1": true},
	}
	inv := &fakeInvalidator{}
	svc := NewService(repo, entities, inv, logging.NewDefault())
	return svc, repo, entities, inv
}

func TestToggleSubscription(t *testing.T) {
	svc, _, _, inv := newTestService()
	ctx := context.Background()

	res, err := svc.ToggleSubscription(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, res.Added)

	res, err = svc.ToggleSubscription(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, res.Added)

	assert.Equal(t, []string{"bob", "bob"}, inv.invalidated)
}

func TestToggleSubscriptionSelf(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.ToggleSubscription(context.Background(), "alice", "alice")
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestToggleSubscriptionUnknownChannel(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.ToggleSubscription(context.Background(), "alice", "ghost")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestToggleLikeVideo(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.ToggleLike(ctx, "alice", models.VideoTarget("v1"))
	require.NoError(t, err)
	assert.True(t, res.Added)

	res, err = svc.ToggleLike(ctx, "alice", models.VideoTarget("v1"))
	require.NoError(t, err)
	assert.False(t, res.Added)
}

func TestToggleLikeMissingTarget(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.ToggleLike(ctx, "alice", models.VideoTarget("nope"))
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.ToggleLike(ctx, "alice", models.CommentTarget("nope"))
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestToggleLikeIndependentTargets(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.ToggleLike(ctx, "alice", models.VideoTarget("v1"))
	require.NoError(t, err)
	assert.True(t, res.Added)

	res, err = svc.ToggleLike(ctx, "alice", models.CommentTarget("c1"))
	require.NoError(t, err)
	assert.True(t, res.Added)

	res, err = svc.ToggleLike(ctx, "bob", models.VideoTarget("v1"))
	require.NoError(t, err)
	assert.True(t, res.Added)
}

func TestCreatePlaylistValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreatePlaylist(ctx, "alice", "", "desc")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.CreatePlaylist(ctx, "alice", "  ", "desc")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	p, err := svc.CreatePlaylist(ctx, "alice", "watch later", "things to watch")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.OwnerID)
	assert.NotEmpty(t, p.ID)
}

func TestPlaylistOwnerOnly(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	p, err := svc.CreatePlaylist(ctx, "alice", "mine", "private list")
	require.NoError(t, err)

	_, err = svc.UpdatePlaylist(ctx, "bob", p.ID, "stolen", "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	err = svc.DeletePlaylist(ctx, "bob", p.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.AddVideos(ctx, "bob", p.ID, []string{"v1"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestAddVideosBatch(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	p, err := svc.CreatePlaylist(ctx, "alice", "mix", "assorted")
	require.NoError(t, err)

	got, err := svc.AddVideos(ctx, "alice", p.ID, []string{"v1", "v2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2"}, got.VideoIDs)

	// a duplicate anywhere in the batch rejects the whole batch
	_, err = svc.AddVideos(ctx, "alice", p.ID, []string{"v1"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = svc.AddVideos(ctx, "alice", p.ID, []string{"missing"})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.AddVideos(ctx, "alice", p.ID, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRemoveVideosBatch(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	p, err := svc.CreatePlaylist(ctx, "alice", "mix", "assorted")
	require.NoError(t, err)

	_, err = svc.AddVideos(ctx, "alice", p.ID, []string{"v1", "v2"})
	require.NoError(t, err)

	// absent member rejects the whole batch, nothing removed
	_, err = svc.RemoveVideos(ctx, "alice", p.ID, []string{"v1", "missing"})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	got, err := svc.RemoveVideos(ctx, "alice", p.ID, []string{"v1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"v2"}, got.VideoIDs)
}
