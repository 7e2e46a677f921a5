package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Caller-argument errors
const (
	// ErrCodeInvalidArgument indicates a required input was nil or empty.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Registration-conflict errors
const (
	// ErrCodeDuplicateCategory indicates the contract or category name is already registered.
	ErrCodeDuplicateCategory ErrorCode = "DUPLICATE_CATEGORY"
	// ErrCodeDuplicateProvider indicates the concrete provider type is already registered.
	ErrCodeDuplicateProvider ErrorCode = "DUPLICATE_PROVIDER"
	// ErrCodeDuplicateProviderName indicates another provider already uses the name.
	ErrCodeDuplicateProviderName ErrorCode = "DUPLICATE_PROVIDER_NAME"
)

// Structural mismatch errors
const (
	// ErrCodeNotAConcreteType indicates a contract was supplied where an implementation was expected.
	ErrCodeNotAConcreteType ErrorCode = "NOT_A_CONCRETE_TYPE"
	// ErrCodeNotAProvider indicates the type does not implement the provider base shape.
	ErrCodeNotAProvider ErrorCode = "NOT_A_SUBTYPE_OF_PROVIDER_BASE"
	// ErrCodeNoMatchingCategory indicates the type implements none of the registered categories.
	ErrCodeNoMatchingCategory ErrorCode = "NO_MATCHING_CATEGORY"
	// ErrCodeNoUsableConstructor indicates no instance and no usable construction path.
	ErrCodeNoUsableConstructor ErrorCode = "NO_USABLE_CONSTRUCTOR"
	// ErrCodeInstanceTypeMismatch indicates a pre-built instance is not of the declared type.
	ErrCodeInstanceTypeMismatch ErrorCode = "INSTANCE_TYPE_MISMATCH"
	// ErrCodeMissingMetadata indicates the contract declares no category name.
	ErrCodeMissingMetadata ErrorCode = "MISSING_CAPABILITY_METADATA"
)

// Lookup errors
const (
	// ErrCodeUnknownCategory indicates the category was never registered.
	ErrCodeUnknownCategory ErrorCode = "UNKNOWN_CATEGORY"
	// ErrCodeUnknownProviderName indicates no provider is registered under the name.
	ErrCodeUnknownProviderName ErrorCode = "UNKNOWN_PROVIDER_NAME"
	// ErrCodeForeignProvider indicates the registration belongs to another registry.
	ErrCodeForeignProvider ErrorCode = "FOREIGN_PROVIDER"
)

// Resolution errors
const (
	// ErrCodeNoUsableProvider indicates no usable provider exists for the category.
	ErrCodeNoUsableProvider ErrorCode = "NO_USABLE_PROVIDER_FOUND"
	// ErrCodeProviderNotUsable indicates the chosen provider currently reports unusable.
	ErrCodeProviderNotUsable ErrorCode = "PROVIDER_NOT_USABLE"
	// ErrCodeContractMismatch indicates the provider does not implement the requested category.
	ErrCodeContractMismatch ErrorCode = "CONTRACT_MISMATCH"
	// ErrCodeConstructionTypeMismatch indicates the built instance does not satisfy the contract.
	ErrCodeConstructionTypeMismatch ErrorCode = "CONSTRUCTION_TYPE_MISMATCH"
	// ErrCodeNullProvider indicates a nil provider handle was passed.
	ErrCodeNullProvider ErrorCode = "NULL_PROVIDER"
	// ErrCodeConstructionFailed indicates the provider factory returned an error.
	ErrCodeConstructionFailed ErrorCode = "CONSTRUCTION_FAILED"
)

// Kind groups error codes by the taxonomy bootstrap code reasons about.
type Kind string

const (
	KindCaller     Kind = "caller"
	KindConflict   Kind = "conflict"
	KindStructural Kind = "structural"
	KindLookup     Kind = "lookup"
	KindResolution Kind = "resolution"
	KindUnknown    Kind = "unknown"
)

var codeKinds = map[ErrorCode]Kind{
	ErrCodeInvalidArgument: KindCaller,

	ErrCodeDuplicateCategory:     KindConflict,
	ErrCodeDuplicateProvider:     KindConflict,
	ErrCodeDuplicateProviderName: KindConflict,

	ErrCodeNotAConcreteType:     KindStructural,
	ErrCodeNotAProvider:         KindStructural,
	ErrCodeNoMatchingCategory:   KindStructural,
	ErrCodeNoUsableConstructor:  KindStructural,
	ErrCodeInstanceTypeMismatch: KindStructural,
	ErrCodeMissingMetadata:      KindStructural,

	ErrCodeUnknownCategory:     KindLookup,
	ErrCodeUnknownProviderName: KindLookup,
	ErrCodeForeignProvider:     KindLookup,

	ErrCodeNoUsableProvider:         KindResolution,
	ErrCodeProviderNotUsable:        KindResolution,
	ErrCodeContractMismatch:         KindResolution,
	ErrCodeConstructionTypeMismatch: KindResolution,
	ErrCodeNullProvider:             KindResolution,
	ErrCodeConstructionFailed:       KindResolution,
}

// KindOf returns the taxonomy group of a code.
func KindOf(code ErrorCode) Kind {
	if k, ok := codeKinds[code]; ok {
		return k
	}
	return KindUnknown
}

// IsRetryableCode reports whether an operation failing with code may succeed
// when repeated unchanged. Registry operations are deterministic, so only a
// failed construction (whose factory may depend on outside state) qualifies.
func IsRetryableCode(code ErrorCode) bool {
	return code == ErrCodeConstructionFailed
}
