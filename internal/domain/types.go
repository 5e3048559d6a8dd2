package domain

type UserID string

type Role string

// Role values are written verbatim into persisted histories and provider
// requests, so they keep the wire spelling used by existing records.
const (
	RoleUser  Role = "USER"
	RoleAgent Role = "CHATBOT"
)
