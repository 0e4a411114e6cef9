package dto

// ── processing ──

// StartProcessingRequest start processing a batch
type StartProcessingRequest struct {
	BatchNo        string  `json:"batchNo"        binding:"required,max=50"`
	ProcessingType string  `json:"processingType" binding:"required"`
	TotalKgs       float64 `json:"totalKgs"       binding:"required,gt=0"`
	Grade          string  `json:"grade"          binding:"required,max=10"`
	CWSID          uint    `json:"cwsId"          binding:"required"`
	Notes          *string `json:"notes"`
}

// UpdateProcessingStatusRequest status change
type UpdateProcessingStatusRequest struct {
	Status string  `json:"status" binding:"required,oneof=IN_PROGRESS BAGGING_STARTED TRANSFERRED COMPLETED"`
	Notes  *string `json:"notes"`
}

// ProcessingListQuery station listing filters
type ProcessingListQuery struct {
	Status         string `form:"status"         binding:"omitempty,oneof=IN_PROGRESS BAGGING_STARTED TRANSFERRED COMPLETED"`
	ProcessingType string `form:"processingType"`
}
