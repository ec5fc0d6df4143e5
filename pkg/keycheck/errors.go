package keycheck

import (
	qerrors "github.com/sara-star-quant/quantum-keycheck/internal/errors"
)

// Errors returned by Validate and SelfTest.
var (
	// ErrKeyMismatch means the shared secrets differed: the keys are not a pair.
	ErrKeyMismatch = qerrors.ErrKeyMismatch

	// ErrNilProvider is wrapped in a *ProviderError when no provider is given.
	ErrNilProvider = qerrors.ErrNilProvider

	// ErrSelfTestFailed is wrapped by SelfTestResult.Err.
	ErrSelfTestFailed = qerrors.ErrSelfTestFailed
)

// ProviderError reports that encapsulation or decapsulation failed, so no
// verdict about the pair could be reached.
type ProviderError = qerrors.ProviderError

// Provider operations named in ProviderError.Op.
const (
	OpEncapsulate = "encapsulate"
	OpDecapsulate = "decapsulate"
)
