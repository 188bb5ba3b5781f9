package directorysdk

// ============================================================================
// Auth
// ============================================================================

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// LoginRequest is the body of POST /api/auth/login. EmailOrUsername is
// matched against the username first, then the email.
type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername" validate:"required,max=255"`
	Password        string `json:"password" validate:"required,max=128"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token    string `json:"token"`
	Type     string `json:"type"` // always "Bearer"
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// MeResponse describes the caller of GET /api/me.
type MeResponse struct {
	UserID        string `json:"userId"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
}

// ============================================================================
// Directory
// ============================================================================

// Business is one directory entry as seen by the caller.
type Business struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category,omitempty"`
	Address     string   `json:"address,omitempty"`
	City        string   `json:"city,omitempty"`
	State       string   `json:"state,omitempty"`
	Zip         string   `json:"zip,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Description string   `json:"description,omitempty"`
	Rating      *float64 `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	Favorited   bool     `json:"favorited"`
}

// BusinessPage is one page of a business listing. Number is zero-based.
type BusinessPage struct {
	Content       []Business `json:"content"`
	TotalElements int64      `json:"totalElements"`
	TotalPages    int        `json:"totalPages"`
	Size          int        `json:"size"`
	Number        int        `json:"number"`
}

// PageOptions selects a page of a listing. Zero values take the server
// defaults (page 0, size 20, sorted by name).
type PageOptions struct {
	Page int
	Size int
	Sort string // "name", "city", "rating" or "reviewCount", optionally ",asc" or ",desc"
}

// FavoriteResponse reports the favorite state after a change.
type FavoriteResponse struct {
	BusinessID string `json:"businessId"`
	Favorited  bool   `json:"favorited"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz. Checks is only set by
// /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks is the status of each dependency checked by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}

// ============================================================================
// Errors
// ============================================================================

// ErrorResponse is the body of every error response. Fields is only set for
// request validation failures and maps JSON field names to the failed rule.
type ErrorResponse struct {
	Error            string            `json:"error"`
	ErrorDescription string            `json:"error_description"`
	Fields           map[string]string `json:"fields,omitempty"`
}
