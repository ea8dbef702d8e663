package constants

// Context keys for values stored on the gin context by middleware.
const (
	ContextKeyUser   = "current_user"
	ContextKeyUserID = "user_id"
)

// Authentication constraints.
const (
	MinPasswordLength = 8
	BearerScheme      = "Bearer"
)

// List query defaults (skip/limit windowing).
const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)
