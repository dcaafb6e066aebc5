package whatsapp

import (
	"fmt"
	"strings"
)

// ValidationError reports an inbound webhook payload from which no message
// could be extracted. Dispatch stops before any session mutation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "whatsapp: invalid webhook payload: " + e.Reason
}

// ConfigurationError reports missing credentials, detected before any
// network I/O. This is a deployment fault, not a runtime input error.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "whatsapp: missing configuration: " + strings.Join(e.Missing, ", ")
}

// DeliveryError reports a failed outbound send: either a non-success HTTP
// response (StatusCode and Body set) or a transport failure (Err set).
type DeliveryError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("whatsapp: send failed: %v", e.Err)
	}
	return fmt.Sprintf("whatsapp: send rejected with status %d: %s", e.StatusCode, e.Body)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
