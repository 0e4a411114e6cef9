package dto

// ── users ──

// RegisterUserRequest admin creates an account
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role"     binding:"required,oneof=SUPER_ADMIN ADMIN MANAGER CWS_MANAGER SUPERVISOR OPERATIONS"`
	CWSID    *uint  `json:"cwsId"`
}

// UpdateUserRequest partial update; role and station only honoured for admins
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=100"`
	Password *string `json:"password" binding:"omitempty,min=6,max=72"`
	Role     *string `json:"role"     binding:"omitempty,oneof=SUPER_ADMIN ADMIN MANAGER CWS_MANAGER SUPERVISOR OPERATIONS"`
	CWSID    *uint   `json:"cwsId"`
}

// UserResponse user without credentials
type UserResponse struct {
	ID        uint             `json:"id"`
	Username  string           `json:"username"`
	Role      string           `json:"role"`
	CWSID     *uint            `json:"cwsId,omitempty"`
	CWS       *StationResponse `json:"cws,omitempty"`
	CreatedAt string           `json:"createdAt"`
}

// Caller identity of the authenticated user making a request
type Caller struct {
	UserID uint
	Role   string
	CWSID  *uint
}
