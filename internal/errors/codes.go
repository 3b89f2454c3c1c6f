package errors

// Error codes returned in the "error" field of failure responses.
// Format: CATEGORY_SPECIFIC_DETAIL

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // no credentials
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong login or password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED" // logged out
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzOwnerOnly = "AUTHZ_OWNER_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"
	ValidationInvalidFilter = "VALIDATION_INVALID_FILTER"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog ====================
	ProductNotFound      = "PRODUCT_NOT_FOUND"
	ProductTypeNotFound  = "PRODUCT_TYPE_NOT_FOUND"
	GenreNotFound        = "GENRE_NOT_FOUND"
	RelationNotFound     = "RELATION_NOT_FOUND"
	RelationExists       = "RELATION_EXISTS"
	ReviewNotFound       = "REVIEW_NOT_FOUND"
	ReviewInvalidScore   = "REVIEW_INVALID_SCORE"
	CommentNotFound      = "COMMENT_NOT_FOUND"
	UserNotFound         = "USER_NOT_FOUND"

	// ==================== Password reset (RESET_) ====================
	ResetTokenNotFound = "RESET_TOKEN_NOT_FOUND"
	ResetTokenExpired  = "RESET_TOKEN_EXPIRED"
	ResetTokenUsed     = "RESET_TOKEN_USED"
	ResetMailFailed    = "RESET_MAIL_FAILED"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadNoFile          = "UPLOAD_NO_FILE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Server (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	InternalDatabase    = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI = "INTERNAL_EXTERNAL_API_ERROR"
)
