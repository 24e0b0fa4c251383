package errors

import (
	"net/http"

	"raices/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is reports whether target is the same base error, matching by error code so
// detail-bearing copies created via WithDetails still match their sentinel.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	return ok && t.errorCode == e.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"Usuario no encontrado",
		"",
	)

	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"El correo electrónico ya está registrado",
		"",
	)

	ErrRoleInvalid = NewBaseError(
		http.StatusBadRequest,
		"ROLE_INVALID",
		"El rol debe ser COMPRADOR o VENDEDOR",
		"",
	)

	ErrSellerContactRequired = NewBaseError(
		http.StatusBadRequest,
		"SELLER_CONTACT_REQUIRED",
		"Los vendedores deben registrar teléfono y WhatsApp",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"No se pudo crear el usuario",
		"",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Credenciales inválidas",
		"",
	)

	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"No autenticado",
		"",
	)

	ErrTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_INVALID",
		"Token inválido o expirado",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Error al procesar la contraseña",
		"",
	)

	// OAuth-related errors
	ErrGoogleTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"GOOGLE_TOKEN_INVALID",
		"Token de Google inválido",
		"",
	)

	ErrGoogleAccountConflict = NewBaseError(
		http.StatusConflict,
		"GOOGLE_ACCOUNT_CONFLICT",
		"El correo ya está vinculado a otra cuenta de Google",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Datos de entrada inválidos",
		"",
	)

	// Property-related errors
	ErrPropertyNotFound = NewBaseError(
		http.StatusNotFound,
		"PROPERTY_NOT_FOUND",
		"Propiedad no encontrada",
		"",
	)

	ErrPropertySlugTaken = NewBaseError(
		http.StatusConflict,
		"PROPERTY_SLUG_TAKEN",
		"Ya existe una propiedad con ese slug",
		"",
	)

	ErrPropertyImagesRequired = NewBaseError(
		http.StatusBadRequest,
		"PROPERTY_IMAGES_REQUIRED",
		"La propiedad debe incluir al menos una imagen",
		"",
	)

	// Project-related errors
	ErrProjectNotFound = NewBaseError(
		http.StatusNotFound,
		"PROJECT_NOT_FOUND",
		"Proyecto no encontrado",
		"",
	)

	ErrProjectSlugTaken = NewBaseError(
		http.StatusConflict,
		"PROJECT_SLUG_TAKEN",
		"Ya existe un proyecto con ese slug",
		"",
	)

	ErrProjectOwnershipViolation = NewBaseError(
		http.StatusForbidden,
		"PROJECT_OWNERSHIP_VIOLATION",
		"No puede asociar propiedades a un proyecto ajeno",
		"",
	)

	// Ownership errors
	ErrNotOwner = NewBaseError(
		http.StatusForbidden,
		"NOT_OWNER",
		"No tiene permiso sobre este recurso",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Acceso denegado",
		"",
	)

	// Favorite-related errors
	ErrFavoriteItemMissing = NewBaseError(
		http.StatusBadRequest,
		"FAVORITE_ITEM_MISSING",
		"Debe indicar una propiedad o un proyecto",
		"",
	)

	ErrFavoriteItemNotFound = NewBaseError(
		http.StatusNotFound,
		"FAVORITE_ITEM_NOT_FOUND",
		"El elemento a marcar como favorito no existe",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"La transacción de base de datos falló",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Error interno del servidor",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Recurso no encontrado",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Conflicto de recursos",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Error al ejecutar la operación en base de datos"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
