package places

import (
	"github.com/rotisserie/eris"
)

// Status is the provider's response status vocabulary.
type Status string

const (
	StatusOK             Status = "OK"
	StatusZeroResults    Status = "ZERO_RESULTS"
	StatusRequestDenied  Status = "REQUEST_DENIED"
	StatusOverQueryLimit Status = "OVER_QUERY_LIMIT"
	StatusInvalidRequest Status = "INVALID_REQUEST"
	StatusUnknownError   Status = "UNKNOWN_ERROR"
)

// Sentinel errors for the quota/auth failure family. Callers branch on these
// with eris.Is to surface configuration problems instead of treating them
// like an empty result set.
var (
	ErrRequestDenied  = eris.New("places: request denied")
	ErrOverQueryLimit = eris.New("places: over query limit")
)

// statusErr maps a non-success status to an error. ZERO_RESULTS is a
// legitimate "no data" outcome and maps to nil.
func statusErr(s Status) error {
	switch s {
	case StatusOK, StatusZeroResults:
		return nil
	case StatusRequestDenied:
		return ErrRequestDenied
	case StatusOverQueryLimit:
		return ErrOverQueryLimit
	default:
		return eris.Errorf("places: provider returned status %s", s)
	}
}

// IsQuotaOrAuth reports whether err belongs to the surfaced quota/auth family.
func IsQuotaOrAuth(err error) bool {
	return eris.Is(err, ErrRequestDenied) || eris.Is(err, ErrOverQueryLimit)
}
