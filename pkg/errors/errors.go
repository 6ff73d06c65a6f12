package custom_error

import "fmt"

type CustomError interface {
	Error() string
}

// SchemaMissingError is returned when the catalog tables do not exist yet.
type SchemaMissingError struct {
	message string
	code    string // PostgreSQL error code (e.g., "42P01")
}

type QueryCanceledError struct {
	message string
	code    string // PostgreSQL error code (e.g., "57014")
}

func (e *SchemaMissingError) Error() string {
	return fmt.Sprintf("%s, run migrations first (code: %s)", e.message, e.code)
}

func (e *QueryCanceledError) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.message, e.code)
}

func WrapDBError(message, code string) CustomError {
	switch code {
	case "42P01":
		return &SchemaMissingError{
			message: message,
			code:    code,
		}
	case "57014":
		return &QueryCanceledError{
			message: "Query canceled " + message,
			code:    code,
		}
	default:
		return fmt.Errorf("uncategorized error occurred with code %s: %s", code, message)
	}
}
