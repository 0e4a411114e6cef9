package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/benitha200/cherryapp-backend/config"
	"github.com/benitha200/cherryapp-backend/internal/repository"
	"github.com/benitha200/cherryapp-backend/pkg/cache"
	apperr "github.com/benitha200/cherryapp-backend/pkg/errors"
	"github.com/benitha200/cherryapp-backend/pkg/jwt"
)

// TokenRevoker revokes tokens by JWT id until they would have expired
type TokenRevoker interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Service aggregate of every service
type Service struct {
	Auth           AuthService
	User           UserService
	Station        StationService
	SiteCollection SiteCollectionService
	Purchase       PurchaseService
	Processing     ProcessingService
	BaggingOff     BaggingOffService
	WetTransfer    WetTransferService
	Transfer       TransferService
	Pricing        PricingService
	Report         ReportService
	Export         ExportService
}

// NewService wires every service.
// store may be cache.Nop{}; revoker may be nil when Redis is disabled.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	store cache.Store,
	revoker TokenRevoker,
	logger *zap.Logger,
) *Service {
	c := cache.New(store, cfg.Cache.TTL, logger)
	purchases := NewPurchaseService(repo, logger)
	reports := NewReportService(repo, logger)

	return &Service{
		Auth:           NewAuthService(cfg, repo, jwtMgr, c, revoker, logger),
		User:           NewUserService(repo, c, logger),
		Station:        NewStationService(repo, c, logger),
		SiteCollection: NewSiteCollectionService(repo, c, logger),
		Purchase:       purchases,
		Processing:     NewProcessingService(cfg, repo, logger),
		BaggingOff:     NewBaggingOffService(repo, logger),
		WetTransfer:    NewWetTransferService(repo, logger),
		Transfer:       NewTransferService(repo, logger),
		Pricing:        NewPricingService(repo, logger),
		Report:         reports,
		Export:         NewExportService(reports, purchases, logger),
	}
}

// lookupErr maps a failed single-row read onto notFound or a persistence error
func lookupErr(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperr.Persistence(err)
}

// passThrough keeps application errors and wraps anything else as persistence
func passThrough(err error) error {
	if _, ok := apperr.As(err); ok {
		return err
	}
	return apperr.Persistence(err)
}

func ptr[T any](v T) *T { return &v }
