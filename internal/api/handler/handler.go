package handler

import (
	"github.com/benitha200/cherryapp-backend/internal/service"
)

// Handler aggregate of every HTTP handler
type Handler struct {
	Auth           *AuthHandler
	User           *UserHandler
	Station        *StationHandler
	SiteCollection *SiteCollectionHandler
	Purchase       *PurchaseHandler
	Processing     *ProcessingHandler
	BaggingOff     *BaggingOffHandler
	WetTransfer    *WetTransferHandler
	Transfer       *TransferHandler
	Pricing        *PricingHandler
	Report         *ReportHandler
	Export         *ExportHandler
}

// NewHandler builds every handler from the service aggregate
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:           NewAuthHandler(svc.Auth),
		User:           NewUserHandler(svc.User),
		Station:        NewStationHandler(svc.Station),
		SiteCollection: NewSiteCollectionHandler(svc.SiteCollection),
		Purchase:       NewPurchaseHandler(svc.Purchase),
		Processing:     NewProcessingHandler(svc.Processing),
		BaggingOff:     NewBaggingOffHandler(svc.BaggingOff),
		WetTransfer:    NewWetTransferHandler(svc.WetTransfer),
		Transfer:       NewTransferHandler(svc.Transfer),
		Pricing:        NewPricingHandler(svc.Pricing),
		Report:         NewReportHandler(svc.Report),
		Export:         NewExportHandler(svc.Export),
	}
}
