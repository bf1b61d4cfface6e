package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClass_String(t *testing.T) {
	assert.Equal(t, "transient", ErrorTransient.String())
	assert.Equal(t, "configuration", ErrorConfiguration.String())
	assert.Equal(t, "decode", ErrorDecode.String())
	assert.Equal(t, "overflow", ErrorOverflow.String())
	assert.Equal(t, "unknown", ErrorClass(99).String())
}

func TestWrap_PreservesChain(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(base, "extractor", "Write", "delimiter scan")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "extractor.Write: delimiter scan failed")
	assert.True(t, errors.Is(err, base))
}

func TestWrap_NilPassthrough(t *testing.T) {
	assert.NoError(t, Wrap(nil, "c", "m", "a"))
	assert.NoError(t, WrapConfiguration(nil, "c", "m", "a"))
	assert.NoError(t, WrapDecode(nil, "c", "m", "a"))
	assert.NoError(t, WrapOverflow(nil, "c", "m", "a"))
	assert.NoError(t, WrapTransient(nil, "c", "m", "a"))
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		class ErrorClass
	}{
		{"configuration wrap", WrapConfiguration(ErrMissingDelimiter, "extractor", "New", "validation"), ErrorConfiguration},
		{"decode wrap", WrapDecode(ErrDecodeFailed, "decoder", "Decode", "hex parse"), ErrorDecode},
		{"overflow wrap", WrapOverflow(ErrBufferOverflow, "extractor", "Write", "bound check"), ErrorOverflow},
		{"transient wrap", WrapTransient(errors.New("read timeout"), "session", "readLoop", "source read"), ErrorTransient},
		{"bare sentinel config", ErrInvalidConfig, ErrorConfiguration},
		{"bare sentinel decode", ErrDecodeFailed, ErrorDecode},
		{"bare sentinel overflow", ErrBufferOverflow, ErrorOverflow},
		{"unknown error defaults transient", errors.New("mystery"), ErrorTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.class, Classify(tt.err))
		})
	}
}

func TestPredicates_Disjoint(t *testing.T) {
	err := WrapDecode(fmt.Errorf("bad digit: %w", ErrDecodeFailed), "decoder", "Decode", "hex parse")

	assert.True(t, IsDecode(err))
	assert.False(t, IsConfiguration(err))
	assert.False(t, IsOverflow(err))
	assert.False(t, IsTransient(err))
}

func TestClassifiedError_Unwrap(t *testing.T) {
	base := errors.New("root cause")
	err := WrapOverflow(base, "extractor", "Write", "bound check")

	var ce *ClassifiedError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrorOverflow, ce.Class)
	assert.Equal(t, "extractor", ce.Component)
	assert.True(t, errors.Is(err, base))
}
