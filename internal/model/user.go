package model

// ── roles ──

const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleManager    = "MANAGER"
	RoleCWSManager = "CWS_MANAGER"
	RoleSupervisor = "SUPERVISOR"
	RoleOperations = "OPERATIONS"
)

// IsAdminRole reports whether role carries admin privileges
func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// User back-office account, optionally pinned to one washing station
type User struct {
	ID           uint   `gorm:"primaryKey"                                 json:"id"`
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex"     json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null"                 json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'OPERATIONS'" json:"role"`
	CWSID        *uint  `gorm:"column:cws_id"                              json:"cwsId,omitempty"`
	BaseModel

	CWS *Station `gorm:"foreignKey:CWSID" json:"cws,omitempty"`
}

// TableName table name
func (User) TableName() string { return "users" }
