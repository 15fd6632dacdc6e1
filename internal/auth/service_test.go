package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aditya-4747/VideoStreamAPI/internal/logging"
	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
	"github.com/aditya-4747/VideoStreamAPI/pkg/models"
)

type fakeUserStore struct {
	users  map[string]*models.User
	nextID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperr.New(apperr.KindConflict, "user with username or email already exists")
		}
	}
	f.nextID++
	user.ID = "user-" + string(rune('0'+f.nextID))
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "user does not exist")
	}
	return u, nil
}

func (f *fakeUserStore) GetUserByUsernameOrEmail(_ context.Context, identifier string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "user does not exist")
}

func (f *fakeUserStore) UserExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) SetRefreshToken(_ context.Context, userID, token string) error {
	u, ok := f.users[userID]
	if !ok {
		return apperr.New(apperr.KindNotFound, "user does not exist")
	}
	u.RefreshToken = &token
	return nil
}

func (f *fakeUserStore) RotateRefreshToken(_ context.Context, userID, presented, replacement string) (bool, error) {
	u, ok := f.users[userID]
	if !ok {
		return false, nil
	}
	if u.RefreshToken == nil || *u.RefreshToken != presented {
		return false, nil
	}
	u.RefreshToken = &replacement
	return true, nil
}

func (f *fakeUserStore) ClearRefreshToken(_ context.Context, userID string) error {
	u, ok := f.users[userID]
	if !ok {
		return apperr.New(apperr.KindNotFound, "user does not exist")
	}
	u.RefreshToken = nil
	return nil
}

type fakeUploader struct {
	uploads []string
}

func (f *fakeUploader) UploadFile(_ context.Context, category, localPath, filename string) (*models.MediaObject, error) {
	f.uploads = append(f.uploads, category+"/"+filename)
	return &models.MediaObject{
		URL: "http://media.test/" + category + "/" + filename,
		Key: category + "/" + filename,
	}, nil
}

func newAuthService() (*Service, *fakeUserStore, *fakeUploader) {
	store := newFakeUserStore()
	uploader := &fakeUploader{}
	svc := NewService(store, testManager(), uploader, logging.NewDefault())
	return svc, store, uploader
}

func registerTestUser(t *testing.T, svc *Service) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Username:   "Alice",
		Email:      "Alice@Example.com",
		FullName:   "Alice Doe",
		Password:   "s3cret",
		AvatarPath: "/tmp/avatar.png",
		AvatarName: "avatar.png",
	})
	require.NoError(t, err)
	return user
}

func TestRegister(t *testing.T) {
	svc, _, uploader := newAuthService()

	user := registerTestUser(t, svc)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.Equal(t, []string{"avatars/avatar.png"}, uploader.uploads)
	assert.NotEmpty(t, user.Avatar)
	assert.Empty(t, user.CoverImage)
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _, _ := newAuthService()
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username:   "alice",
		Email:      "other@example.com",
		FullName:   "Other",
		Password:   "pw",
		AvatarPath: "/tmp/a.png",
		AvatarName: "a.png",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthService()

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		FullName: "Bob",
		Password: "pw",
		// no avatar
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestLogin(t *testing.T) {
	svc, store, _ := newAuthService()
	user := registerTestUser(t, svc)

	got, pair, err := svc.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	require.NotNil(t, store.users[user.ID].RefreshToken)
	assert.Equal(t, pair.RefreshToken, *store.users[user.ID].RefreshToken)

	// login works with the email too
	_, _, err = svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _, _ := newAuthService()
	registerTestUser(t, svc)

	_, _, err := svc.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	_, _, err = svc.Login(context.Background(), "nobody", "s3cret")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestLoginSupersedesRefreshToken(t *testing.T) {
	svc, _, _ := newAuthService()
	registerTestUser(t, svc)
	ctx := context.Background()

	_, first, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)

	// the first session's refresh token no longer matches the slot
	_, err = svc.Refresh(ctx, first.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestRefreshRotatesExactlyOnce(t *testing.T) {
	svc, _, _ := newAuthService()
	registerTestUser(t, svc)
	ctx := context.Background()

	_, pair, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// replaying the superseded token fails
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	// the rotated token still works
	_, err = svc.Refresh(ctx, next.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _ := newAuthService()
	registerTestUser(t, svc)
	ctx := context.Background()

	_, pair, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.AccessToken)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestLogoutUnknownUser(t *testing.T) {
	svc, _, _ := newAuthService()

	err := svc.Logout(context.Background(), "deleted-user")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestLogoutInvalidatesRefresh(t *testing.T) {
	svc, _, _ := newAuthService()
	user := registerTestUser(t, svc)
	ctx := context.Background()

	_, pair, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}
