package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregate of every repository
type Repository struct {
	db *gorm.DB

	User           UserRepository
	Station        StationRepository
	SiteCollection SiteCollectionRepository
	Purchase       PurchaseRepository
	Processing     ProcessingRepository
	BaggingOff     BaggingOffRepository
	WetTransfer    WetTransferRepository
	Transfer       TransferRepository
	Pricing        PricingRepository
}

// NewRepository builds the aggregate on db
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:             db,
		User:           NewUserRepo(db),
		Station:        NewStationRepo(db),
		SiteCollection: NewSiteCollectionRepo(db),
		Purchase:       NewPurchaseRepo(db),
		Processing:     NewProcessingRepo(db),
		BaggingOff:     NewBaggingOffRepo(db),
		WetTransfer:    NewWetTransferRepo(db),
		Transfer:       NewTransferRepo(db),
		Pricing:        NewPricingRepo(db),
	}
}

// BeginTx opens a transaction.
// Returns a nil tx when the aggregate has no database (unit tests with mocks).
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx returns an aggregate bound to tx; nil tx returns r unchanged
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// RunInTx runs fn inside one transaction, rolling back on error or panic
func (r *Repository) RunInTx(ctx context.Context, fn func(txRepo *Repository) error) error {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(p)
		}
	}()

	if err := fn(r.WithTx(tx)); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}

	if tx != nil {
		return tx.Commit().Error
	}
	return nil
}
