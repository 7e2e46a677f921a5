package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the error type returned by every registry operation.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if repeating the operation unchanged can succeed.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is matches another *AppError by code, so stdlib errors.Is works against
// sentinel values such as &AppError{Code: ErrCodeUnknownCategory}.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Kind returns the taxonomy group of the error code.
func (e *AppError) Kind() Kind { return KindOf(e.Code) }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// --- Registry error constructors ---

// InvalidArgument creates an error for a nil or empty required input.
func InvalidArgument(arg, reason string) *AppError {
	return New(ErrCodeInvalidArgument, fmt.Sprintf("Invalid argument %s: %s", arg, reason)).
		WithDetail("argument", arg)
}

// DuplicateCategory creates an error for a contract or name registered twice.
func DuplicateCategory(name string) *AppError {
	return New(ErrCodeDuplicateCategory, fmt.Sprintf("Category %q is already registered.", name)).
		WithDetail("category", name)
}

// DuplicateProvider creates an error for a concrete type registered twice.
func DuplicateProvider(typeName string) *AppError {
	return New(ErrCodeDuplicateProvider, fmt.Sprintf("Provider type %s is already registered.", typeName)).
		WithDetail("type", typeName)
}

// DuplicateProviderName creates an error for a provider name used twice.
func DuplicateProviderName(name string) *AppError {
	return New(ErrCodeDuplicateProviderName, fmt.Sprintf("A provider named %q is already registered.", name)).
		WithDetail("provider", name)
}

// NotAConcreteType creates an error for a contract passed as a provider type.
func NotAConcreteType(typeName string) *AppError {
	return New(ErrCodeNotAConcreteType, fmt.Sprintf("%s is a contract, not a concrete provider type.", typeName)).
		WithDetail("type", typeName)
}

// NotAProvider creates an error for a type lacking Name, Description and CanUse.
func NotAProvider(typeName string) *AppError {
	return New(ErrCodeNotAProvider, fmt.Sprintf("%s does not implement the provider base.", typeName)).
		WithDetail("type", typeName)
}

// NoMatchingCategory creates an error for a type implementing no registered category.
func NoMatchingCategory(typeName string) *AppError {
	return New(ErrCodeNoMatchingCategory, fmt.Sprintf("%s implements no registered category.", typeName)).
		WithDetail("type", typeName)
}

// NoUsableConstructor creates an error for a registration without a construction path.
func NoUsableConstructor(typeName string) *AppError {
	return New(ErrCodeNoUsableConstructor, fmt.Sprintf("%s has no usable constructor and no instance was supplied.", typeName)).
		WithDetail("type", typeName)
}

// InstanceTypeMismatch creates an error for a pre-built instance of the wrong type.
func InstanceTypeMismatch(want, got string) *AppError {
	return New(ErrCodeInstanceTypeMismatch, fmt.Sprintf("Instance of type %s does not match provider type %s.", got, want)).
		WithDetail("want", want).WithDetail("got", got)
}

// MissingMetadata creates an error for a contract without a declared category name.
func MissingMetadata(contract string) *AppError {
	return New(ErrCodeMissingMetadata, fmt.Sprintf("Contract %s declares no category name.", contract)).
		WithDetail("contract", contract)
}

// UnknownCategory creates an error for a category that was never registered.
func UnknownCategory(contract string) *AppError {
	return New(ErrCodeUnknownCategory, fmt.Sprintf("Category %s is not registered.", contract)).
		WithDetail("category", contract)
}

// UnknownProviderName creates an error for a provider name with no registration.
func UnknownProviderName(name string) *AppError {
	return New(ErrCodeUnknownProviderName, fmt.Sprintf("No provider named %q is registered.", name)).
		WithDetail("provider", name)
}

// ForeignProvider creates an error for a registration owned by another registry.
func ForeignProvider(name string) *AppError {
	return New(ErrCodeForeignProvider, fmt.Sprintf("Provider %q belongs to a different registry.", name)).
		WithDetail("provider", name)
}

// NoUsableProvider creates an error for a category with no usable provider.
func NoUsableProvider(category string) *AppError {
	return New(ErrCodeNoUsableProvider, fmt.Sprintf("No usable provider found for category %q.", category)).
		WithDetail("category", category)
}

// ProviderNotUsable creates an error for a provider that reports unusable.
func ProviderNotUsable(name string) *AppError {
	return New(ErrCodeProviderNotUsable, fmt.Sprintf("Provider %q cannot be used.", name)).
		WithDetail("provider", name)
}

// ContractMismatch creates an error for a provider that does not implement the category.
func ContractMismatch(provider, category string) *AppError {
	return New(ErrCodeContractMismatch, fmt.Sprintf("Provider %q does not implement category %q.", provider, category)).
		WithDetail("provider", provider).WithDetail("category", category)
}

// ConstructionTypeMismatch creates an error for a built instance that misses the contract.
func ConstructionTypeMismatch(provider, category string) *AppError {
	return New(ErrCodeConstructionTypeMismatch, fmt.Sprintf("Instance of provider %q does not satisfy category %q.", provider, category)).
		WithDetail("provider", provider).WithDetail("category", category)
}

// NullProvider creates an error for a nil provider handle.
func NullProvider() *AppError {
	return New(ErrCodeNullProvider, "Provider handle is nil.")
}

// ConstructionFailed creates an error for a factory that returned an error.
func ConstructionFailed(provider string, cause error) *AppError {
	return New(ErrCodeConstructionFailed, fmt.Sprintf("Constructing provider %q failed.", provider)).
		WithDetail("provider", provider).WithCause(cause)
}
