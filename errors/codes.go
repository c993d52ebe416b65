package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Caller errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeProviderUnsupported indicates no factory is registered for a provider.
	ErrCodeProviderUnsupported ErrorCode = "PROVIDER_UNSUPPORTED"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates the resource already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
)

// Native SDK errors
const (
	// ErrCodeContainerNotMounted indicates the display node is not attached to the display tree.
	ErrCodeContainerNotMounted ErrorCode = "CONTAINER_NOT_MOUNTED"
	// ErrCodeNativeSDK indicates the wrapped map SDK rejected an operation.
	ErrCodeNativeSDK ErrorCode = "NATIVE_SDK_ERROR"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
