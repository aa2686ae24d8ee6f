package user

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-avatar-service/internal/domain/user"
	pkgerrors "user-avatar-service/pkg/errors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Put(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockAvatarStore is a mock implementation of the AvatarStore interface
type MockAvatarStore struct {
	mock.Mock
}

func (m *MockAvatarStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}

func setupTestService(t *testing.T) (*Service, *MockRepository, *MockAvatarStore) {
	mockRepo := new(MockRepository)
	mockStore := new(MockAvatarStore)
	logger := zaptest.NewLogger(t)
	svc := New(mockRepo, mockStore, logger)
	return svc, mockRepo, mockStore
}

func TestCreateUser_Success(t *testing.T) {
	svc, mockRepo, mockStore := setupTestService(t)
	ctx := context.Background()

	req := CreateUserRequest{
		Name:  "Ann",
		Email: "ann@x.com",
	}

	mockRepo.On("Put", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID != "" && u.Name == req.Name && u.Email == req.Email && u.AvatarURL == ""
	})).Return(nil)

	resp, err := svc.CreateUser(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.ID)
	assert.Empty(t, resp.AvatarURL)

	// The generated id is a valid UUID
	_, err = uuid.Parse(resp.ID)
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
	mockStore.AssertNotCalled(t, "Upload")
}

func TestCreateUser_UniqueIDs(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("Put", ctx, mock.Anything).Return(nil)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		resp, err := svc.CreateUser(ctx, CreateUserRequest{Name: "Ann", Email: "ann@x.com"})
		require.NoError(t, err)
		assert.False(t, seen[resp.ID], "id %q returned twice", resp.ID)
		seen[resp.ID] = true
	}
}

func TestCreateUser_WithAvatar(t *testing.T) {
	svc, mockRepo, mockStore := setupTestService(t)
	ctx := context.Background()

	req := CreateUserRequest{
		Name:  "Ann",
		Email: "ann@x.com",
		Avatar: &AvatarUpload{
			Filename:    "me.png",
			ContentType: "image/png",
			Content:     strings.NewReader("png-bytes"),
		},
	}

	avatarURL := "http://localhost:4566/user-avatars/some-key.png"

	mockStore.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasSuffix(key, ".png")
	}), "image/png", req.Avatar.Content).Return(avatarURL, nil)

	mockRepo.On("Put", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.AvatarURL == avatarURL
	})).Return(nil)

	resp, err := svc.CreateUser(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, avatarURL, resp.AvatarURL)

	mockStore.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestCreateUser_MissingName(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	resp, err := svc.CreateUser(ctx, CreateUserRequest{Name: "", Email: "ann@x.com"})

	assert.Nil(t, resp)
	var vErr *pkgerrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Missing 'name' or 'email'", vErr.Message)

	mockRepo.AssertNotCalled(t, "Put")
}

func TestCreateUser_MissingEmail(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	resp, err := svc.CreateUser(ctx, CreateUserRequest{Name: "Ann", Email: ""})

	assert.Nil(t, resp)
	var vErr *pkgerrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Missing 'name' or 'email'", vErr.Message)

	mockRepo.AssertNotCalled(t, "Put")
}

func TestCreateUser_PersistFailure(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	cause := errors.New("table unavailable")
	mockRepo.On("Put", ctx, mock.Anything).Return(cause)

	resp, err := svc.CreateUser(ctx, CreateUserRequest{Name: "Ann", Email: "ann@x.com"})

	assert.Nil(t, resp)
	var pErr *pkgerrors.PersistenceError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "Failed to save user", pErr.Message)
	assert.ErrorIs(t, err, cause)
}

func TestCreateUser_UploadFailure(t *testing.T) {
	svc, mockRepo, mockStore := setupTestService(t)
	ctx := context.Background()

	cause := errors.New("bucket unavailable")
	mockStore.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return("", cause)

	resp, err := svc.CreateUser(ctx, CreateUserRequest{
		Name:   "Ann",
		Email:  "ann@x.com",
		Avatar: &AvatarUpload{Filename: "me.png", Content: strings.NewReader("x")},
	})

	assert.Nil(t, resp)
	var pErr *pkgerrors.PersistenceError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "Failed to store avatar", pErr.Message)

	mockRepo.AssertNotCalled(t, "Put")
}

func TestListUsers_Success(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	stored := []domain.User{
		{ID: "id-1", Name: "Ann", Email: "ann@x.com", AvatarURL: ""},
		{ID: "id-2", Name: "Bob", Email: "bob@x.com", AvatarURL: "http://localhost:4566/user-avatars/k.jpg"},
	}
	mockRepo.On("ListAll", ctx).Return(stored, nil)

	resp, err := svc.ListUsers(ctx)

	require.NoError(t, err)
	require.Len(t, resp.Users, 2)
	assert.Equal(t, "id-1", resp.Users[0].ID)
	assert.Empty(t, resp.Users[0].AvatarURL)
	assert.Equal(t, stored[1].AvatarURL, resp.Users[1].AvatarURL)
}

func TestListUsers_Empty(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("ListAll", ctx).Return([]domain.User{}, nil)

	resp, err := svc.ListUsers(ctx)

	require.NoError(t, err)
	assert.NotNil(t, resp.Users)
	assert.Len(t, resp.Users, 0)
}

func TestListUsers_ScanFailure(t *testing.T) {
	svc, mockRepo, _ := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("ListAll", ctx).Return(nil, errors.New("scan failed"))

	resp, err := svc.ListUsers(ctx)

	assert.Nil(t, resp)
	var pErr *pkgerrors.PersistenceError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "Failed to list users", pErr.Message)
}

func TestStorageKey(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		suffix   string
	}{
		{name: "png extension kept", filename: "avatar.png", suffix: ".png"},
		{name: "last extension wins", filename: "archive.tar.gz", suffix: ".gz"},
		{name: "no extension", filename: "avatar", suffix: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := storageKey(tt.filename)
			if tt.suffix == "" {
				_, err := uuid.Parse(key)
				assert.NoError(t, err)
				return
			}
			assert.True(t, strings.HasSuffix(key, tt.suffix), "key %q", key)
			_, err := uuid.Parse(strings.TrimSuffix(key, tt.suffix))
			assert.NoError(t, err)
		})
	}
}
