package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeUnknownCategory, "not registered")
	if err.Code != ErrCodeUnknownCategory {
		t.Errorf("expected code %s, got %s", ErrCodeUnknownCategory, err.Code)
	}
	if err.Message != "not registered" {
		t.Errorf("expected message 'not registered', got %q", err.Message)
	}
	if err.Retryable {
		t.Error("UNKNOWN_CATEGORY should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeConstructionFailed, "boom")
	if !err.Retryable {
		t.Error("CONSTRUCTION_FAILED should be retryable")
	}
}

func TestAppError_Error_WithCause(t *testing.T) {
	err := ConstructionFailed("disk", fmt.Errorf("no space"))
	msg := err.Error()
	if !strings.Contains(msg, "CONSTRUCTION_FAILED") {
		t.Errorf("expected code in message, got %q", msg)
	}
	if !strings.Contains(msg, "no space") {
		t.Errorf("expected cause in message, got %q", msg)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root")
	err := ConstructionFailed("disk", cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", UnknownProviderName("audi"))
	if !stderrors.Is(err, &AppError{Code: ErrCodeUnknownProviderName}) {
		t.Error("expected errors.Is to match by code")
	}
	if stderrors.Is(err, &AppError{Code: ErrCodeUnknownCategory}) {
		t.Error("expected different code not to match")
	}
}

func TestCodeOfAndHasCode(t *testing.T) {
	err := fmt.Errorf("ctx: %w", DuplicateProviderName("audi"))
	if CodeOf(err) != ErrCodeDuplicateProviderName {
		t.Errorf("expected DUPLICATE_PROVIDER_NAME, got %q", CodeOf(err))
	}
	if !HasCode(err, ErrCodeDuplicateProviderName) {
		t.Error("expected HasCode to be true")
	}
	if HasCode(nil, ErrCodeDuplicateProviderName) {
		t.Error("expected HasCode(nil) to be false")
	}
	if CodeOf(fmt.Errorf("plain")) != "" {
		t.Error("expected empty code for a plain error")
	}
}

func TestAsAppError(t *testing.T) {
	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected plain error not to convert")
	}
	appErr, ok := AsAppError(NullProvider())
	if !ok || appErr.Code != ErrCodeNullProvider {
		t.Errorf("expected NULL_PROVIDER, got %v", appErr)
	}
	if !IsAppError(NullProvider()) {
		t.Error("expected IsAppError to be true")
	}
}

func TestConstructors_Kinds(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
		kind Kind
	}{
		{"invalid argument", InvalidArgument("contract", "is empty"), ErrCodeInvalidArgument, KindCaller},
		{"duplicate category", DuplicateCategory("Cache"), ErrCodeDuplicateCategory, KindConflict},
		{"duplicate provider", DuplicateProvider("*MemoryCache"), ErrCodeDuplicateProvider, KindConflict},
		{"duplicate provider name", DuplicateProviderName("audi"), ErrCodeDuplicateProviderName, KindConflict},
		{"not a concrete type", NotAConcreteType("Cache"), ErrCodeNotAConcreteType, KindStructural},
		{"not a provider", NotAProvider("int"), ErrCodeNotAProvider, KindStructural},
		{"no matching category", NoMatchingCategory("*X"), ErrCodeNoMatchingCategory, KindStructural},
		{"no usable constructor", NoUsableConstructor("*X"), ErrCodeNoUsableConstructor, KindStructural},
		{"instance type mismatch", InstanceTypeMismatch("*X", "*Y"), ErrCodeInstanceTypeMismatch, KindStructural},
		{"missing metadata", MissingMetadata("Cache"), ErrCodeMissingMetadata, KindStructural},
		{"unknown category", UnknownCategory("Cache"), ErrCodeUnknownCategory, KindLookup},
		{"unknown provider name", UnknownProviderName("x"), ErrCodeUnknownProviderName, KindLookup},
		{"foreign provider", ForeignProvider("x"), ErrCodeForeignProvider, KindLookup},
		{"no usable provider", NoUsableProvider("Cache"), ErrCodeNoUsableProvider, KindResolution},
		{"provider not usable", ProviderNotUsable("x"), ErrCodeProviderNotUsable, KindResolution},
		{"contract mismatch", ContractMismatch("x", "Cache"), ErrCodeContractMismatch, KindResolution},
		{"construction type mismatch", ConstructionTypeMismatch("x", "Cache"), ErrCodeConstructionTypeMismatch, KindResolution},
		{"null provider", NullProvider(), ErrCodeNullProvider, KindResolution},
		{"construction failed", ConstructionFailed("x", nil), ErrCodeConstructionFailed, KindResolution},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.Kind() != tc.kind {
				t.Errorf("expected kind %s, got %s", tc.kind, tc.err.Kind())
			}
			if tc.err.Message == "" {
				t.Error("expected a message")
			}
		})
	}
}

func TestKindOf_Unknown(t *testing.T) {
	if KindOf("SOMETHING_ELSE") != KindUnknown {
		t.Error("expected unknown kind for unregistered code")
	}
}

func TestWithDetail(t *testing.T) {
	err := New(ErrCodeInvalidArgument, "x").WithDetail("k", "v")
	if err.Details["k"] != "v" {
		t.Errorf("expected detail k=v, got %v", err.Details)
	}
}
