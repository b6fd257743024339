// Package provider implements odds provider adapters and the fan-out
// manager that fetches from all of them concurrently.
package provider

import (
	"context"

	"github.com/yourusername/oddscout/internal/models"
)

// Provider defines the interface for fetching normalized price quotes from
// an external odds source.
type Provider interface {
	// Name returns the provider identifier used in logs and metrics
	Name() string

	// FetchQuotes retrieves quotes for a sport across the given leagues
	FetchQuotes(ctx context.Context, sport models.Sport, leagues []string) ([]models.PriceQuote, error)
}

// ProviderError represents errors from provider operations
type ProviderError struct {
	Provider string // Provider name
	Code     string // Error code (e.g., "rate_limit_exceeded")
	Message  string // Error message
	Err      error  // Underlying error
}

func (e ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + ": " + e.Code + ": " + e.Message
}

func (e ProviderError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
)

// NewProviderError creates a new provider error
func NewProviderError(provider, code, message string, err error) ProviderError {
	return ProviderError{
		Provider: provider,
		Code:     code,
		Message:  message,
		Err:      err,
	}
}
