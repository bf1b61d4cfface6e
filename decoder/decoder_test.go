package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/streamdash/errors"
)

func TestDecode_PlainText(t *testing.T) {
	out, err := Decode([]byte("temp=23.5,hum=40"), PlainText)
	require.NoError(t, err)
	assert.Equal(t, "temp=23.5,hum=40", out)
}

func TestDecode_PlainText_InvalidUTF8Replaced(t *testing.T) {
	out, err := Decode([]byte{'o', 'k', 0xff, 0xfe}, PlainText)
	require.NoError(t, err)
	assert.Equal(t, "ok��", out)
}

func TestDecode_Hexadecimal(t *testing.T) {
	out, err := Decode([]byte("414243"), Hexadecimal)
	require.NoError(t, err)
	assert.Equal(t, "ABC", out)
}

func TestDecode_Hexadecimal_MixedCaseAndWhitespace(t *testing.T) {
	out, err := Decode([]byte("41 62 0a\t43"), Hexadecimal)
	require.NoError(t, err)
	assert.Equal(t, "Ab\nC", out)
}

func TestDecode_Hexadecimal_OddLength(t *testing.T) {
	_, err := Decode([]byte("414"), Hexadecimal)
	require.Error(t, err)
	assert.True(t, errors.IsDecode(err))
}

func TestDecode_Hexadecimal_InvalidDigit(t *testing.T) {
	_, err := Decode([]byte("41zz"), Hexadecimal)
	require.Error(t, err)
	assert.True(t, errors.IsDecode(err))
}

func TestDecode_Base64(t *testing.T) {
	out, err := Decode([]byte("aGVsbG8="), Base64)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestDecode_Base64_Malformed(t *testing.T) {
	_, err := Decode([]byte("not base64!!"), Base64)
	require.Error(t, err)
	assert.True(t, errors.IsDecode(err))
}

func TestDecode_UnknownMethod(t *testing.T) {
	_, err := Decode([]byte("x"), Method(99))
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{"", "a", "hello world", "temp=23.5,hum=40\r", "üñïçødé"}
	for _, m := range []Method{PlainText, Hexadecimal, Base64} {
		for _, in := range inputs {
			out, err := Decode(Encode(in, m), m)
			require.NoError(t, err, "method %s input %q", m, in)
			assert.Equal(t, in, out, "method %s", m)
		}
	}
}

func TestMethodFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"plain_text", PlainText, false},
		{"PlainText", PlainText, false},
		{"text", PlainText, false},
		{"", PlainText, false},
		{"hex", Hexadecimal, false},
		{"Hexadecimal", Hexadecimal, false},
		{"base64", Base64, false},
		{"rot13", PlainText, true},
	}

	for _, tt := range tests {
		got, err := MethodFromString(tt.in)
		if tt.wantErr {
			require.Error(t, err, "input %q", tt.in)
			assert.True(t, errors.IsConfiguration(err))
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestMethod_StringAndValid(t *testing.T) {
	assert.Equal(t, "plain_text", PlainText.String())
	assert.Equal(t, "hexadecimal", Hexadecimal.String())
	assert.Equal(t, "base64", Base64.String())
	assert.Equal(t, "unknown", Method(42).String())

	assert.True(t, Base64.Valid())
	assert.False(t, Method(42).Valid())
}
