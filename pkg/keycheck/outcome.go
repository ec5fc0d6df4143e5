package keycheck

import (
	"errors"

	"github.com/sara-star-quant/quantum-keycheck/pkg/metrics"
)

// Outcome is the verdict of a single validation.
type Outcome int

const (
	OutcomeValid Outcome = iota
	OutcomeMismatch
	// OutcomeProviderError covers every error that is not a mismatch,
	// including a canceled context: no verdict was reached.
	OutcomeProviderError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return metrics.OutcomeValid
	case OutcomeMismatch:
		return metrics.OutcomeMismatch
	case OutcomeProviderError:
		return metrics.OutcomeProviderError
	default:
		return "unknown"
	}
}

// Classify maps an error returned by Validate to its Outcome.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeValid
	case errors.Is(err, ErrKeyMismatch):
		return OutcomeMismatch
	default:
		return OutcomeProviderError
	}
}
