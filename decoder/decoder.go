// Package decoder turns raw frame payloads into text under a configurable
// encoding. All functions are pure and safe to invoke concurrently on
// independent frames, which is what lets the pipeline decode on a worker
// pool.
package decoder

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/c360/streamdash/errors"
)

// Method selects the byte-to-text transform applied to each frame payload.
// It is immutable for the lifetime of a session.
type Method int

const (
	// PlainText interprets payload bytes as text directly.
	PlainText Method = iota
	// Hexadecimal decodes payloads assuming hex digit pairs.
	Hexadecimal
	// Base64 decodes payloads assuming standard Base64 with padding.
	Base64
)

// String returns the identifier used in configuration files.
func (m Method) String() string {
	switch m {
	case PlainText:
		return "plain_text"
	case Hexadecimal:
		return "hexadecimal"
	case Base64:
		return "base64"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the defined decoder methods.
func (m Method) Valid() bool {
	switch m {
	case PlainText, Hexadecimal, Base64:
		return true
	default:
		return false
	}
}

// MethodFromString parses a configuration identifier into a Method.
func MethodFromString(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain_text", "plaintext", "text", "":
		return PlainText, nil
	case "hexadecimal", "hex":
		return Hexadecimal, nil
	case "base64":
		return Base64, nil
	default:
		return PlainText, errors.WrapConfiguration(
			fmt.Errorf("%w: %q", errors.ErrInvalidDecoder, s),
			"decoder", "MethodFromString", "method lookup")
	}
}

// Decode transforms a raw frame payload into text under the given method.
//
// PlainText never fails: invalid UTF-8 sequences are replaced with U+FFFD.
// Hexadecimal tolerates whitespace between digit pairs, since many devices
// emit payloads like "AA BB CC". Hexadecimal and Base64 return an error
// classified as a decode failure on malformed input; the caller skips the
// frame and keeps streaming.
func Decode(data []byte, m Method) (string, error) {
	switch m {
	case PlainText:
		return strings.ToValidUTF8(string(data), "�"), nil

	case Hexadecimal:
		cleaned := removeWhitespace(data)
		if len(cleaned)%2 != 0 {
			return "", errors.WrapDecode(
				fmt.Errorf("%w: odd hex length %d", errors.ErrDecodeFailed, len(cleaned)),
				"decoder", "Decode", "hexadecimal parse")
		}
		decoded := make([]byte, hex.DecodedLen(len(cleaned)))
		if _, err := hex.Decode(decoded, cleaned); err != nil {
			return "", errors.WrapDecode(
				fmt.Errorf("%w: %v", errors.ErrDecodeFailed, err),
				"decoder", "Decode", "hexadecimal parse")
		}
		return strings.ToValidUTF8(string(decoded), "�"), nil

	case Base64:
		decoded, err := base64.StdEncoding.DecodeString(string(data))
		if err != nil {
			return "", errors.WrapDecode(
				fmt.Errorf("%w: %v", errors.ErrDecodeFailed, err),
				"decoder", "Decode", "base64 parse")
		}
		return strings.ToValidUTF8(string(decoded), "�"), nil

	default:
		return "", errors.WrapConfiguration(
			fmt.Errorf("%w: %d", errors.ErrInvalidDecoder, m),
			"decoder", "Decode", "method dispatch")
	}
}

// Encode is the inverse of Decode for valid inputs. PlainText returns the
// text bytes unchanged; Hexadecimal and Base64 produce payloads that
// Decode maps back to text (round-trip law).
func Encode(text string, m Method) []byte {
	switch m {
	case Hexadecimal:
		return []byte(hex.EncodeToString([]byte(text)))
	case Base64:
		return []byte(base64.StdEncoding.EncodeToString([]byte(text)))
	default:
		return []byte(text)
	}
}

func removeWhitespace(data []byte) []byte {
	out := data[:0:0]
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
		default:
			out = append(out, b)
		}
	}
	return out
}
