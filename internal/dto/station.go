package dto

// ── stations ──

// CreateStationRequest create a washing station
type CreateStationRequest struct {
	Name                 string `json:"name"                    binding:"required,min=2,max=100"`
	Location             string `json:"location"                binding:"required,max=200"`
	Code                 string `json:"code"                    binding:"required,alphanum,max=10"`
	HasSpeciality        *bool  `json:"havespeciality"`
	IsWetParchmentSender *bool  `json:"is_wet_parchment_sender"`
}

// UpdateStationRequest partial update
type UpdateStationRequest struct {
	Name                 *string `json:"name"                    binding:"omitempty,min=2,max=100"`
	Location             *string `json:"location"                binding:"omitempty,max=200"`
	Code                 *string `json:"code"                    binding:"omitempty,alphanum,max=10"`
	HasSpeciality        *bool   `json:"havespeciality"`
	IsWetParchmentSender *bool   `json:"is_wet_parchment_sender"`
}

// StationResponse washing station
type StationResponse struct {
	ID                   uint   `json:"id"`
	Name                 string `json:"name"`
	Location             string `json:"location"`
	Code                 string `json:"code"`
	HasSpeciality        bool   `json:"havespeciality"`
	IsWetParchmentSender bool   `json:"is_wet_parchment_sender"`
}

// ── site collections ──

// CreateSiteCollectionRequest create a collection point
type CreateSiteCollectionRequest struct {
	Name  string `json:"name"  binding:"required,min=2,max=100"`
	CWSID uint   `json:"cwsId" binding:"required"`
}

// UpdateSiteCollectionRequest partial update
type UpdateSiteCollectionRequest struct {
	Name  *string `json:"name"  binding:"omitempty,min=2,max=100"`
	CWSID *uint   `json:"cwsId"`
}

// SiteCollectionResponse collection point
type SiteCollectionResponse struct {
	ID    uint             `json:"id"`
	Name  string           `json:"name"`
	CWSID uint             `json:"cwsId"`
	CWS   *StationResponse `json:"cws,omitempty"`
}
