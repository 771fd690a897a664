package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Content Types
	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyOrgID     = "org_id"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableOrganizations = "organizations"
	TableProfiles      = "profiles"
	TableMemberships   = "memberships"
	TableSubscriptions = "subscriptions"
	TableUsageEvents   = "usage_events"
	TableCampaigns     = "campaigns"
	TableChatSessions  = "chat_sessions"
	TableChatMessages  = "chat_messages"
)
