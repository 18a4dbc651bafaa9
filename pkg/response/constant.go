package response

// Default response messages and codes.
const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Internal server error"

	InternalServerErrorCode = 500
)
