package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/model"
	"github.com/benitha200/cherryapp-backend/internal/repository"
	"github.com/benitha200/cherryapp-backend/pkg/cache"
	apperr "github.com/benitha200/cherryapp-backend/pkg/errors"
)

// ── user errors ──

var (
	ErrUsernameTaken  = apperr.New(apperr.KindBusinessRule, 10020, "username already exists")
	ErrNotOwnAccount  = apperr.New(apperr.KindForbidden, 10021, "you can only update your own account")
	ErrAdminRequired  = apperr.New(apperr.KindForbidden, 10022, "admin access required")
	ErrUserSelfDelete = apperr.New(apperr.KindBusinessRule, 10023, "cannot delete your own account")
)

// UserService back-office accounts
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.UserResponse, error)
	List(ctx context.Context) ([]dto.UserResponse, error)
	// Update lets users edit themselves; role and station changes need an admin
	Update(ctx context.Context, id uint, req *dto.UpdateUserRequest, caller dto.Caller) (*dto.UserResponse, error)
	Delete(ctx context.Context, id uint, caller dto.Caller) error
}

type userService struct {
	repo   *repository.Repository
	cache  *cache.Cache
	logger *zap.Logger
}

// NewUserService creates a UserService
func NewUserService(repo *repository.Repository, c *cache.Cache, logger *zap.Logger) UserService {
	return &userService{repo: repo, cache: c, logger: logger}
}

// ────────────────────── Register ──────────────────────

func (s *userService) Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.UserResponse, error) {
	if req.CWSID != nil {
		if _, err := s.repo.Station.GetByID(ctx, *req.CWSID); err != nil {
			return nil, lookupErr(err, ErrStationNotFound)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         req.Role,
		CWSID:        req.CWSID,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		s.logger.Error("failed to create user", zap.String("username", req.Username), zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	s.cache.Invalidate(ctx, cache.KeyUsersAll)
	s.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return s.GetByID(ctx, user.ID)
}

// ────────────────────── Reads ──────────────────────

func (s *userService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrUserNotFound)
	}
	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	var cached []dto.UserResponse
	if s.cache.GetJSON(ctx, cache.KeyUsersAll, &cached) {
		return cached, nil
	}

	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}

	s.cache.SetJSON(ctx, cache.KeyUsersAll, result)
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id uint, req *dto.UpdateUserRequest, caller dto.Caller) (*dto.UserResponse, error) {
	admin := model.IsAdminRole(caller.Role)
	if caller.UserID != id && !admin {
		return nil, ErrNotOwnAccount
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrUserNotFound)
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("failed to hash password", zap.Error(err))
			return nil, apperr.Persistence(err)
		}
		user.PasswordHash = string(hash)
	}
	// non-admins silently keep their role and station
	if admin {
		if req.Role != nil {
			user.Role = *req.Role
		}
		if req.CWSID != nil {
			if *req.CWSID == 0 {
				user.CWSID = nil
			} else {
				if _, err := s.repo.Station.GetByID(ctx, *req.CWSID); err != nil {
					return nil, lookupErr(err, ErrStationNotFound)
				}
				user.CWSID = req.CWSID
			}
			user.CWS = nil
		}
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		s.logger.Error("failed to update user", zap.Uint("user_id", id), zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	s.cache.Invalidate(ctx, cache.KeyUsersAll, cache.KeyUserMe(id))
	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id uint, caller dto.Caller) error {
	if !model.IsAdminRole(caller.Role) {
		return ErrAdminRequired
	}
	if caller.UserID == id {
		return ErrUserSelfDelete
	}

	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		return lookupErr(err, ErrUserNotFound)
	}
	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user", zap.Uint("user_id", id), zap.Error(err))
		return apperr.Persistence(err)
	}

	s.cache.Invalidate(ctx, cache.KeyUsersAll, cache.KeyUserMe(id))
	return nil
}

func toUserResponse(u *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CWSID:     u.CWSID,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.CWS != nil {
		resp.CWS = toStationResponse(u.CWS)
	}
	return resp
}
