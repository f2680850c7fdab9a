package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Ingestion limits
	MaxIngestBatchSize = 1000

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Content Types
	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableTickets        = "prognosis_tickets"
	TableVinDetails     = "prognosis_vin_details"
	TableErrorCodes     = "prognosis_ticket_errorcodes"
	TableCustomerMaster = "customer_master"
	TableErrorMaster    = "prognosis_errorcode_master"

	// Error record statuses
	ErrorStatusActive   = "ACTIVE"
	ErrorStatusResolved = "RESOLVED"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgValidationFailed    = "Validation failed"
)
