// Package errors defines the coded error taxonomy shared by the
// eventcast orchestrator and its platform adapters.
package errors

// Error categories. The category is the code prefix.
const (
	// ValidationCategory covers canonical-event and adapter field checks.
	ValidationCategory = "VAL"

	// PlatformCategory covers failures reported by a platform backend.
	PlatformCategory = "PLT"

	// NetworkCategory covers transport-level failures reaching a backend.
	NetworkCategory = "NET"

	// ReviewCategory covers review-cycle contract violations and outcomes.
	ReviewCategory = "REV"

	// SystemCategory covers everything that has no better classification.
	SystemCategory = "SYS"
)

// Code represents an error code for categorization.
type Code string

const (
	// ErrValidation - a required or malformed field was rejected, either
	// at canonical-event construction or at an adapter boundary.
	ErrValidation Code = "VAL001"

	// ErrAuth - the platform rejected the configured credentials.
	ErrAuth Code = "PLT001"

	// ErrNotFound - the referenced platform artifact does not exist.
	ErrNotFound Code = "PLT002"

	// ErrRateLimited - the platform throttled the call.
	ErrRateLimited Code = "PLT003"

	// ErrNetwork - the platform could not be reached or timed out.
	ErrNetwork Code = "NET001"

	// ErrIllegalTransition - a review cycle was driven out of contract.
	ErrIllegalTransition Code = "REV001"

	// ErrReviewAbandoned - the requester rejected the draft for good.
	ErrReviewAbandoned Code = "REV002"

	// ErrUnknown - an unclassified platform or adapter failure.
	ErrUnknown Code = "SYS001"
)

// Severity levels used by ErrorInfo.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// ErrorInfo carries the classification of an error code.
type ErrorInfo struct {
	Code        Code   `json:"code"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Retryable   bool   `json:"retryable"`
	Description string `json:"description"`
}

// errorRegistry is the classification table for all known codes.
// Only RateLimited and Network are retryable; everything else is a
// deterministic failure a retry cannot fix.
var errorRegistry = map[Code]ErrorInfo{
	ErrValidation: {
		Code:        ErrValidation,
		Category:    ValidationCategory,
		Severity:    SeverityLow,
		Retryable:   false,
		Description: "field validation failed",
	},
	ErrAuth: {
		Code:        ErrAuth,
		Category:    PlatformCategory,
		Severity:    SeverityHigh,
		Retryable:   false,
		Description: "platform authentication failed",
	},
	ErrNotFound: {
		Code:        ErrNotFound,
		Category:    PlatformCategory,
		Severity:    SeverityMedium,
		Retryable:   false,
		Description: "platform artifact not found",
	},
	ErrRateLimited: {
		Code:        ErrRateLimited,
		Category:    PlatformCategory,
		Severity:    SeverityMedium,
		Retryable:   true,
		Description: "platform rate limit exceeded",
	},
	ErrNetwork: {
		Code:        ErrNetwork,
		Category:    NetworkCategory,
		Severity:    SeverityMedium,
		Retryable:   true,
		Description: "platform unreachable",
	},
	ErrIllegalTransition: {
		Code:        ErrIllegalTransition,
		Category:    ReviewCategory,
		Severity:    SeverityCritical,
		Retryable:   false,
		Description: "illegal review cycle transition",
	},
	ErrReviewAbandoned: {
		Code:        ErrReviewAbandoned,
		Category:    ReviewCategory,
		Severity:    SeverityLow,
		Retryable:   false,
		Description: "review abandoned by requester",
	},
	ErrUnknown: {
		Code:        ErrUnknown,
		Category:    SystemCategory,
		Severity:    SeverityHigh,
		Retryable:   false,
		Description: "unclassified failure",
	},
}

// GetErrorInfo returns the classification for a code. Unknown codes map
// to the ErrUnknown classification.
func GetErrorInfo(code Code) ErrorInfo {
	if info, ok := errorRegistry[code]; ok {
		return info
	}
	return errorRegistry[ErrUnknown]
}

// Category returns the category prefix of the code.
func (c Code) Category() string {
	return GetErrorInfo(c).Category
}
