package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/benitha200/cherryapp-backend/config"
	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/model"
	"github.com/benitha200/cherryapp-backend/internal/repository"
	"github.com/benitha200/cherryapp-backend/pkg/cache"
	apperr "github.com/benitha200/cherryapp-backend/pkg/errors"
	"github.com/benitha200/cherryapp-backend/pkg/jwt"
)

var (
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, 10010, "invalid username or password")
	ErrInvalidRefresh     = apperr.New(apperr.KindUnauthorized, 10011, "invalid or expired refresh token")
	ErrUserNotFound       = apperr.New(apperr.KindNotFound, 10012, "user not found")
)

// AuthService login, token rotation and logout
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	// Logout revokes the access token identified by jti until it expires
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	Me(ctx context.Context, userID uint) (*dto.UserResponse, error)
}

type authService struct {
	cfg     *config.Config
	repo    *repository.Repository
	jwtMgr  *jwt.Manager
	cache   *cache.Cache
	revoker TokenRevoker
	logger  *zap.Logger
}

// NewAuthService creates an AuthService. revoker may be nil, logout is
// then a no-op on the server side.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	c *cache.Cache,
	revoker TokenRevoker,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:     cfg,
		repo:    repo,
		jwtMgr:  jwtMgr,
		cache:   c,
		revoker: revoker,
		logger:  logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to load user", zap.String("username", req.Username), zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("user logged in", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return s.issue(user)
}

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrInvalidRefresh
	}

	if s.revoker != nil {
		revoked, err := s.revoker.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("token blacklist unavailable", zap.Error(err))
		} else if revoked {
			return nil, ErrInvalidRefresh
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, apperr.Persistence(err)
	}

	// one-shot refresh tokens
	if s.revoker != nil && claims.ExpiresAt != nil {
		if err := s.revoker.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("failed to revoke used refresh token", zap.Error(err))
		}
	}
	return s.issue(user)
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.revoker == nil || jti == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.revoker.BlacklistToken(ctx, jti, ttl); err != nil {
		s.logger.Error("failed to revoke token", zap.Error(err))
		return apperr.Persistence(err)
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	key := cache.KeyUserMe(userID)
	var cached dto.UserResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(err, ErrUserNotFound)
	}

	resp := toUserResponse(user)
	s.cache.SetJSON(ctx, key, resp)
	return resp, nil
}

func (s *authService) issue(user *model.User) (*dto.TokenResponse, error) {
	sub := jwt.Subject{UserID: user.ID, Username: user.Username, Role: user.Role, CWSID: user.CWSID}

	access, err := s.jwtMgr.GenerateAccessToken(sub)
	if err != nil {
		s.logger.Error("failed to sign access token", zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	refresh, err := s.jwtMgr.GenerateRefreshToken(sub)
	if err != nil {
		s.logger.Error("failed to sign refresh token", zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	return &dto.TokenResponse{
		Token:        access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:         *toUserResponse(user),
	}, nil
}
