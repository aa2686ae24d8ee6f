package user

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "user-avatar-service/internal/domain/user"
	pkgerrors "user-avatar-service/pkg/errors"
)

// Repository defines the interface for user data access operations.
// It abstracts the key-value store, allowing different implementations
// to be used interchangeably.
type Repository interface {
	Put(ctx context.Context, u *domain.User) error      // Persist a user record
	ListAll(ctx context.Context) ([]domain.User, error) // Full unfiltered scan of the user table
}

// AvatarStore defines the interface for avatar object storage. Upload
// stores the byte stream under key and returns the URL the object is
// reachable under.
type AvatarStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// Service implements the business logic for user operations. It provides
// a clean separation between the transport layer and the storage layers.
type Service struct {
	repo     Repository          // Repository for user records
	store    AvatarStore         // Object store for avatar files
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

// New creates a new Service with the provided repository, avatar store, and logger.
func New(r Repository, s AvatarStore, log *zap.Logger) *Service {
	return &Service{repo: r, store: s, log: log, validate: validator.New()}
}

// CreateUser creates a new user record. When the request carries an avatar,
// the file is stored first under a fresh key; the uploaded object is not
// removed if validation or the record write fails afterwards.
func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	id := uuid.New().String()
	s.log.Info("creating user",
		zap.String("id", id),
		zap.String("name", in.Name),
		zap.String("email", in.Email),
		zap.Bool("has_avatar", in.Avatar != nil),
	)

	avatarURL := ""
	if in.Avatar != nil {
		key := storageKey(in.Avatar.Filename)
		url, err := s.store.Upload(ctx, key, in.Avatar.ContentType, in.Avatar.Content)
		if err != nil {
			s.log.Error("failed to store avatar", zap.String("key", key), zap.Error(err))
			return nil, pkgerrors.NewPersistenceError("Failed to store avatar", err)
		}
		avatarURL = url
		s.log.Info("avatar stored", zap.String("key", key), zap.String("url", url))
	}

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, pkgerrors.NewValidationError("name/email", "Missing 'name' or 'email'")
	}

	if err := s.repo.Put(ctx, &domain.User{
		ID:        id,
		Name:      in.Name,
		Email:     in.Email,
		AvatarURL: avatarURL,
	}); err != nil {
		s.log.Error("failed to save user", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.NewPersistenceError("Failed to save user", err)
	}

	return &CreateUserResponse{ID: id, AvatarURL: avatarURL}, nil
}

// ListUsers retrieves all user records in whatever order the underlying
// scan yields them.
func (s *Service) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	s.log.Info("listing users")

	domainUsers, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.Error("failed to list users", zap.Error(err))
		return nil, pkgerrors.NewPersistenceError("Failed to list users", err)
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = User{
			ID:        du.ID,
			Name:      du.Name,
			Email:     du.Email,
			AvatarURL: du.AvatarURL,
		}
	}

	return &ListUsersResponse{Users: users}, nil
}

// storageKey derives the object key for an uploaded file: a fresh UUID
// keeping the original file extension, bare UUID when there is none.
func storageKey(filename string) string {
	key := uuid.New().String()
	if ext := strings.TrimPrefix(filepath.Ext(filename), "."); ext != "" {
		key = key + "." + ext
	}
	return key
}
