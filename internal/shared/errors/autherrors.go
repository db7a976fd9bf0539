package errors

import "net/http"

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeTokenExpired       ErrorType = "token_expired"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
)

// AuthError wraps an AppError raised while authenticating an employee.
type AuthError struct {
	*AppError
	// ShouldLog is false for expected failures such as a wrong password.
	ShouldLog bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidCredentialsError does not reveal whether the email or the password was wrong.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "Invalid email or password",
			Code:    http.StatusUnauthorized,
		},
	}
}

// NewTokenExpiredError creates an error for an expired bearer token
func NewTokenExpiredError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: "Token has expired",
			Code:    http.StatusUnauthorized,
		},
	}
}

// NewTokenInvalidError creates an error for a malformed or forged bearer token
func NewTokenInvalidError(details string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenInvalid,
			Message: "Invalid token",
			Code:    http.StatusUnauthorized,
			Details: details,
		},
		ShouldLog: true,
	}
}
