package dto

// ── bagging-off ──

// ProcessingRef reference to a processing record by id
type ProcessingRef struct {
	ID uint `json:"id"`
}

// ReconcileBaggingOffRequest report of graded output for a batch.
// Required fields are checked by the service so missing ones map onto one error.
type ReconcileBaggingOffRequest struct {
	Date               string             `json:"date"`
	OutputKgs          map[string]float64 `json:"outputKgs"`
	ProcessingType     string             `json:"processingType"`
	ExistingProcessing *ProcessingRef     `json:"existingProcessing"`
	BatchNo            string             `json:"batchNo"`
	Status             string             `json:"status"`
	Progressive        bool               `json:"progressive"`
	Notes              *string            `json:"notes"`
}

// UpdateBaggingOffRequest edit a stored bagging-off
type UpdateBaggingOffRequest struct {
	Date      *string            `json:"date"`
	OutputKgs map[string]float64 `json:"outputKgs"`
	Status    *string            `json:"status"`
	Notes     *string            `json:"notes"`
}
