package keycheck_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	qerrors "github.com/sara-star-quant/quantum-keycheck/internal/errors"
	"github.com/sara-star-quant/quantum-keycheck/pkg/keycheck"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want keycheck.Outcome
	}{
		{"nil", nil, keycheck.OutcomeValid},
		{"mismatch", keycheck.ErrKeyMismatch, keycheck.OutcomeMismatch},
		{"wrapped mismatch", fmt.Errorf("pair db-1: %w", keycheck.ErrKeyMismatch), keycheck.OutcomeMismatch},
		{"provider", qerrors.NewProviderError("Kyber1024", keycheck.OpDecapsulate, qerrors.ErrInvalidSecretKey), keycheck.OutcomeProviderError},
		{"canceled", context.Canceled, keycheck.OutcomeProviderError},
		{"other", errors.New("x"), keycheck.OutcomeProviderError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keycheck.Classify(tt.err))
		})
	}
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "valid", keycheck.OutcomeValid.String())
	assert.Equal(t, "mismatch", keycheck.OutcomeMismatch.String())
	assert.Equal(t, "provider_error", keycheck.OutcomeProviderError.String())
	assert.Equal(t, "unknown", keycheck.Outcome(99).String())
}
