package model

// Station coffee washing station (CWS)
type Station struct {
	ID                   uint   `gorm:"primaryKey"                             json:"id"`
	Name                 string `gorm:"type:varchar(100);not null"             json:"name"`
	Location             string `gorm:"type:varchar(200);not null"             json:"location"`
	Code                 string `gorm:"type:varchar(10);not null;uniqueIndex"  json:"code"`
	HasSpeciality        bool   `gorm:"column:has_speciality;not null;default:false" json:"havespeciality"`
	IsWetParchmentSender bool   `gorm:"not null;default:true"                  json:"is_wet_parchment_sender"`
	BaseModel
}

// TableName table name
func (Station) TableName() string { return "cws" }

// SiteCollection collection point feeding a station
type SiteCollection struct {
	ID    uint   `gorm:"primaryKey"                 json:"id"`
	Name  string `gorm:"type:varchar(100);not null" json:"name"`
	CWSID uint   `gorm:"column:cws_id;not null;index" json:"cwsId"`
	BaseModel

	CWS *Station `gorm:"foreignKey:CWSID" json:"cws,omitempty"`
}

// TableName table name
func (SiteCollection) TableName() string { return "site_collections" }
