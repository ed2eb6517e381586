package elevenlabs

import (
	"errors"
	"fmt"
)

// ErrNoVoices reports an empty voice catalogue.
var ErrNoVoices = errors.New("no voices available")

// StatusError carries a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
	// VoiceLookup marks a failed GET /voices; those report CodeOther.
	VoiceLookup bool
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// Numeric failure codes printed in batch reports.
const (
	CodeOK         = 0
	CodeNoVoice    = 1
	CodeHTTPStatus = 2
	CodeOther      = 3
)

// ErrorCode maps err onto the batch report codes: 1 when no voice could be
// selected, 2 when synthesis answered with a non-2xx status, 3 otherwise
// (including a rejected voice lookup).
func ErrorCode(err error) int {
	if err == nil {
		return CodeOK
	}
	if errors.Is(err, ErrNoVoices) {
		return CodeNoVoice
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) && !statusErr.VoiceLookup {
		return CodeHTTPStatus
	}
	return CodeOther
}
