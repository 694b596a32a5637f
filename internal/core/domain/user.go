package domain

// User is an authenticated actor. The core only ever uses the UserID as an opaque
// identifier for created_by/approved_by stamping.
type User struct {
	UserID       string `json:"userID"` // Primary key (UUID)
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
