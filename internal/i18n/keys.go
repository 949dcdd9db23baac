// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAccessDenied           = "auth.access_denied"

	// Leads
	KeyLeadCreated   = "lead.created"
	KeyLeadUpdated   = "lead.updated"
	KeyLeadDeleted   = "lead.deleted"
	KeyLeadNotFound  = "lead.not_found"
	KeyLeadConverted = "lead.converted"

	// Clients
	KeyClientCreated      = "client.created"
	KeyClientUpdated      = "client.updated"
	KeyClientDeleted      = "client.deleted"
	KeyClientNotFound     = "client.not_found"
	KeyClientCommentAdded = "client.comment_added"
	KeyClientFileUploaded = "client.file_uploaded"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"

	// Purchases
	KeyPurchaseRecorded = "purchase.recorded"
	KeyPurchaseNotFound = "purchase.not_found"

	// Teams
	KeyTeamCreated     = "team.created"
	KeyTeamUpdated     = "team.updated"
	KeyTeamDeleted     = "team.deleted"
	KeyTeamNotFound    = "team.not_found"
	KeyTeamMemberAdded = "team.member_added"

	// Projects
	KeyProjectCreated      = "project.created"
	KeyProjectUpdated      = "project.updated"
	KeyProjectDeleted      = "project.deleted"
	KeyProjectNotFound     = "project.not_found"
	KeyProjectTeamAssigned = "project.team_assigned"

	// Validation
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationRequired = "validation.required"
)
