package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bpmutter/tappdin-backend/internal/model"
	"github.com/bpmutter/tappdin-backend/internal/pkg/jwtutil"
	"github.com/bpmutter/tappdin-backend/internal/pkg/password"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailExists  = errors.New("email already exists")
	ErrLoginFailed  = errors.New("the provided credentials were invalid")
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("operation not permitted on another user's account")
)

type UserStore interface {
	Create(user *model.User) error
	GetByEmail(email string) (*model.User, error)
	GetByID(id uint) (*model.User, error)
	Update(user *model.User) error
	DeleteCascade(userID uint) error
}

type CheckinStore interface {
	ListByUserID(userID uint) ([]model.Checkin, error)
}

type CheckinFeedCache interface {
	GetFeed(ctx context.Context, userID uint) ([]model.Checkin, bool, error)
	SetFeed(ctx context.Context, userID uint, checkins []model.Checkin) error
	DeleteFeed(ctx context.Context, userID uint) error
	MarkDirty(ctx context.Context, userID uint) error
	IsDirty(ctx context.Context, userID uint) (bool, error)
}

type AccountService struct {
	userRepo      UserStore
	checkinRepo   CheckinStore
	feedCache     CheckinFeedCache
	jwtSecret     string
	jwtExpiration time.Duration
}

type SignupInput struct {
	Email     string
	Password  string
	Username  string
	FirstName string
	LastName  string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

type Profile struct {
	User     *model.User     `json:"user"`
	Checkins []model.Checkin `json:"checkins"`
}

type UpdateProfileInput struct {
	Username  string
	FirstName string
	LastName  string
	AboutYou  string
	Email     string
}

// OutcomeResult is the reported (non-error) result of password change and
// account deletion: the request itself succeeds, Success says whether the
// business operation did. Callers must check the flag.
type OutcomeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewAccountService(
	userRepo UserStore,
	checkinRepo CheckinStore,
	feedCache CheckinFeedCache,
	jwtSecret string,
	jwtExpiration time.Duration,
) *AccountService {
	return &AccountService{
		userRepo:      userRepo,
		checkinRepo:   checkinRepo,
		feedCache:     feedCache,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *AccountService) Signup(input SignupInput) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	username := strings.TrimSpace(input.Username)

	if email == "" || username == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Login deliberately reports the same ErrLoginFailed for an unknown email and
// for a wrong password, so the response never reveals which accounts exist.
func (s *AccountService) Login(input LoginInput) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrLoginFailed
	}
	if !password.Verify(input.Password, user.PasswordHash) {
		return nil, ErrLoginFailed
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AccountService) GetProfile(userID uint) (*Profile, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	checkins, err := s.loadCheckins(userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Checkins: checkins}, nil
}

func (s *AccountService) loadCheckins(userID uint) ([]model.Checkin, error) {
	ctx := context.Background()
	if s.feedCache != nil {
		dirty, err := s.feedCache.IsDirty(ctx, userID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.feedCache.GetFeed(ctx, userID); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	checkins, err := s.checkinRepo.ListByUserID(userID)
	if err != nil {
		return nil, err
	}
	if s.feedCache != nil {
		if dirty, dirtyErr := s.feedCache.IsDirty(ctx, userID); dirtyErr == nil && !dirty {
			_ = s.feedCache.SetFeed(ctx, userID, checkins)
		}
	}
	return checkins, nil
}

func (s *AccountService) UpdateProfile(authUserID, targetUserID uint, input UpdateProfileInput) (*model.User, error) {
	if authUserID == 0 || targetUserID == 0 {
		return nil, ErrInvalidInput
	}
	if authUserID != targetUserID {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.GetByID(targetUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.Username = strings.TrimSpace(input.Username)
	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)
	user.AboutYou = strings.TrimSpace(input.AboutYou)
	user.Email = strings.TrimSpace(strings.ToLower(input.Email))
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) ChangePassword(authUserID, targetUserID uint, oldPassword, newPassword string) (*OutcomeResult, error) {
	if authUserID == 0 || targetUserID == 0 || newPassword == "" {
		return nil, ErrInvalidInput
	}
	if authUserID != targetUserID {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.GetByID(targetUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !password.Verify(oldPassword, user.PasswordHash) {
		return &OutcomeResult{
			Success: false,
			Message: "There was a problem updating your password. Please try again.",
		}, nil
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return &OutcomeResult{
		Success: true,
		Message: "Your password has been successfully updated.",
	}, nil
}

func (s *AccountService) DeleteAccount(authUserID, targetUserID uint, deletePassword, confirmDeletePassword string) (*OutcomeResult, error) {
	if authUserID == 0 || targetUserID == 0 {
		return nil, ErrInvalidInput
	}
	if authUserID != targetUserID {
		return nil, ErrForbidden
	}

	// Confirm mismatch is decided before any store access.
	if deletePassword != confirmDeletePassword {
		return &OutcomeResult{
			Success: false,
			Message: "It looks like your passwords didn't match. Please try again.",
		}, nil
	}

	user, err := s.userRepo.GetByID(targetUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !password.Verify(deletePassword, user.PasswordHash) {
		return &OutcomeResult{
			Success: false,
			Message: "It seems you didn't enter the correct password. Please try again.",
		}, nil
	}

	if err := s.userRepo.DeleteCascade(targetUserID); err != nil {
		return nil, err
	}
	if s.feedCache != nil {
		_ = s.feedCache.DeleteFeed(context.Background(), targetUserID)
	}

	return &OutcomeResult{
		Success: true,
		Message: "The user and all associated data has successfully been deleted.",
	}, nil
}
