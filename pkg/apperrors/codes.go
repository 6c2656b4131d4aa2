package apperrors

// Error codes - organized by domain

// Authentication errors (AUTH_*)
const (
	ErrCodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	ErrCodeTokenExpired       = "AUTH_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "AUTH_TOKEN_INVALID"
	ErrCodeTokenMalformed     = "AUTH_TOKEN_MALFORMED"
	ErrCodeAccountLocked      = "AUTH_ACCOUNT_LOCKED"
)

// Authorization errors (AUTHZ_*)
const (
	ErrCodeForbidden   = "AUTHZ_FORBIDDEN"
	ErrCodeInvalidRole = "AUTHZ_INVALID_ROLE"
)

// Validation errors (VALIDATION_*)
const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeMissingField     = "VALIDATION_MISSING_FIELD"
	ErrCodeInvalidInput     = "VALIDATION_INVALID_INPUT"
	ErrCodeInvalidURL       = "VALIDATION_INVALID_URL"
)

// Content errors (CONTENT_*)
const (
	ErrCodeContentParseFailed = "CONTENT_PARSE_FAILED"
	ErrCodeContentTooLarge    = "CONTENT_TOO_LARGE"
)

// Resource errors (RESOURCE_*)
const (
	ErrCodePostNotFound     = "RESOURCE_POST_NOT_FOUND"
	ErrCodeCategoryNotFound = "RESOURCE_CATEGORY_NOT_FOUND"
	ErrCodeTagNotFound      = "RESOURCE_TAG_NOT_FOUND"
	ErrCodeAuthorNotFound   = "RESOURCE_AUTHOR_NOT_FOUND"
	ErrCodeProductNotFound  = "RESOURCE_PRODUCT_NOT_FOUND"
	ErrCodeTeamNotFound     = "RESOURCE_TEAM_NOT_FOUND"
	ErrCodeCampaignNotFound = "RESOURCE_CAMPAIGN_NOT_FOUND"
	ErrCodeUserNotFound     = "RESOURCE_USER_NOT_FOUND"
	ErrCodeResourceExists   = "RESOURCE_ALREADY_EXISTS"
)

// Rate limiting errors (RATE_*)
const (
	ErrCodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrCodeLoginLimitExceeded = "RATE_LOGIN_LIMIT_EXCEEDED"
)

// Upload errors (UPLOAD_*)
const (
	ErrCodeUploadFailed     = "UPLOAD_FAILED"
	ErrCodeUploadTooLarge   = "UPLOAD_TOO_LARGE"
	ErrCodeUploadBadUseCase = "UPLOAD_INVALID_USE_CASE"
)

// Internal errors (INTERNAL_*)
const (
	ErrCodeDatabaseError   = "INTERNAL_DATABASE_ERROR"
	ErrCodeEmailSendFailed = "INTERNAL_EMAIL_SEND_FAILED"
	ErrCodeS3Error         = "INTERNAL_S3_ERROR"
	ErrCodeCacheError      = "INTERNAL_CACHE_ERROR"
	ErrCodeSuggestFailed   = "INTERNAL_SUGGEST_FAILED"
	ErrCodeUnexpectedError = "INTERNAL_UNEXPECTED_ERROR"
)
