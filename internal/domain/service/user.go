package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clubmsg/backend/internal/domain/common/errorz"
	"github.com/clubmsg/backend/internal/domain/entity"
	"github.com/clubmsg/backend/internal/domain/utils/validator"
	"github.com/clubmsg/backend/pkg/password"
)

const confirmationCodeTTL = 24 * time.Hour

type UserStorage interface {
	CreateWithProfile(ctx context.Context, user *entity.User, profile *entity.Profile) (*entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type smtpClient interface {
	SendConfirmationEmail(to string, code string)
}

type codeStorage interface {
	Set(ctx context.Context, code string, userID string, expiration time.Duration) error
	Get(ctx context.Context, code string) (string, error)
	Clear(ctx context.Context, code string) error
}

// ProfileDefaults seeds the profile created alongside a new user. The
// avatar URL comes from configuration; it is never read from the
// environment at package level.
type ProfileDefaults struct {
	AvatarURL string
	About     string
}

type UserService struct {
	storage        UserStorage
	profileStorage ProfileStorage
	codes          codeStorage
	smtp           smtpClient
	defaults       ProfileDefaults
}

func NewUserService(storage UserStorage, profileStorage ProfileStorage, codes codeStorage, smtp smtpClient, defaults ProfileDefaults) *UserService {
	if defaults.About == "" {
		defaults.About = entity.DefaultAbout
	}
	return &UserService{
		storage:        storage,
		profileStorage: profileStorage,
		codes:          codes,
		smtp:           smtp,
		defaults:       defaults,
	}
}

// Register validates the credentials, creates the user together with
// its profile in one transaction and mails a confirmation code. A user
// never exists without a profile.
func (s *UserService) Register(ctx context.Context, username, email, plain string) (*entity.User, error) {
	if !validator.Username(username) {
		return nil, errorz.Validation("username", "must be alphanumeric with single - or _ separators")
	}
	if !validator.Email(email) {
		return nil, errorz.Validation("email", "must be a valid email address")
	}
	if !validator.Password(plain) {
		return nil, errorz.Validation("password", "must be at least 8 characters with an uppercase letter, a lowercase letter and a digit")
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	profile := &entity.Profile{
		Avatar: s.defaults.AvatarURL,
		About:  s.defaults.About,
	}
	user, err = s.storage.CreateWithProfile(ctx, user, profile)
	if err != nil {
		return nil, err
	}

	if s.codes != nil && s.smtp != nil {
		code := uuid.New().String()
		if err := s.codes.Set(ctx, code, user.ID, confirmationCodeTTL); err == nil {
			s.smtp.SendConfirmationEmail(user.Email, code)
		}
	}

	return user, nil
}

// Login checks the password against the stored hash. The identifier
// may be a username or an email.
func (s *UserService) Login(ctx context.Context, usernameOrEmail, plain string) (*entity.User, error) {
	user, err := s.storage.GetByUsername(ctx, usernameOrEmail)
	if err != nil {
		user, err = s.storage.GetByEmail(ctx, usernameOrEmail)
	}
	if err != nil {
		return nil, errorz.ErrInvalidCredentials
	}
	if !password.Verify(plain, user.PasswordHash) {
		return nil, errorz.ErrInvalidCredentials
	}
	return user, nil
}

// ConfirmEmail marks the profile behind a mailed code as verified and
// burns the code.
func (s *UserService) ConfirmEmail(ctx context.Context, code string) (*entity.Profile, error) {
	userID, err := s.codes.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileStorage.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.IsVerified = true
	profile, err = s.profileStorage.Update(ctx, profile)
	if err != nil {
		return nil, err
	}
	_ = s.codes.Clear(ctx, code)
	return profile, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.storage.Get(ctx, id)
}

func (s *UserService) GetAll(ctx context.Context) ([]entity.User, error) {
	return s.storage.GetAll(ctx)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.storage.Count(ctx)
}

// UserPatch carries the updatable user fields; nil fields are left
// untouched.
type UserPatch struct {
	Email   *string `json:"email"`
	IsStaff *bool   `json:"is_staff"`
}

// Update patches a user. Only the user themself or staff may do it.
func (s *UserService) Update(ctx context.Context, requesterID, userID string, patch UserPatch) (*entity.User, error) {
	if err := s.authorize(ctx, requesterID, userID); err != nil {
		return nil, err
	}
	user, err := s.storage.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patch.Email != nil {
		if !validator.Email(*patch.Email) {
			return nil, errorz.Validation("email", "must be a valid email address")
		}
		user.Email = *patch.Email
	}
	if patch.IsStaff != nil {
		requester, err := s.storage.Get(ctx, requesterID)
		if err != nil {
			return nil, err
		}
		if !requester.IsStaff {
			return nil, errorz.ErrForbidden
		}
		user.IsStaff = *patch.IsStaff
	}
	return s.storage.Update(ctx, user)
}

// Delete removes a user; the storage cascades the profile, its
// memberships and the user's messages.
func (s *UserService) Delete(ctx context.Context, requesterID, userID string) error {
	if err := s.authorize(ctx, requesterID, userID); err != nil {
		return err
	}
	return s.storage.Delete(ctx, userID)
}

func (s *UserService) authorize(ctx context.Context, requesterID, userID string) error {
	if requesterID == userID {
		return nil
	}
	requester, err := s.storage.Get(ctx, requesterID)
	if err != nil {
		return err
	}
	if !requester.IsStaff {
		return errorz.ErrForbidden
	}
	return nil
}
