package cosigner_client

import "fmt"

var (
	ErrMissingBaseURL   = fmt.Errorf("missing base url")
	ErrInvalidBaseURL   = fmt.Errorf("invalid base url")
	ErrMissingAPIKey    = fmt.Errorf("missing api key")
	ErrMissingAPISecret = fmt.Errorf("missing api secret")

	ErrNetworkFailure       = fmt.Errorf("network failure")
	ErrAuthenticationFailed = fmt.Errorf("authentication failed")
)

// ServerError is a structured error surfaced by the co-signing service,
// passed through to the caller unmodified.
type ServerError struct {
	Status  int
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	if len(e.Code) > 0 {
		return fmt.Sprintf(
			"server rejected request (%d %s): %s", e.Status, e.Code, e.Message,
		)
	}
	return fmt.Sprintf("server rejected request (%d): %s", e.Status, e.Message)
}
