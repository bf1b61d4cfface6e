package config

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/c360/streamdash/errors"
)

// ParseDelimiter unescapes a delimiter string from a configuration file.
// Supported escapes: \n, \r, \t, \0, \\ and \xNN (two hex digits).
// Everything else is taken literally.
func ParseDelimiter(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}

	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}

		i++
		if i >= len(s) {
			return nil, errors.WrapConfiguration(
				fmt.Errorf("%w: trailing backslash in delimiter %q", errors.ErrInvalidConfig, s),
				"config", "ParseDelimiter", "escape parse")
		}

		switch s[i] {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case '0':
			out = append(out, 0)
		case '\\':
			out = append(out, '\\')
		case 'x':
			if i+2 >= len(s) {
				return nil, errors.WrapConfiguration(
					fmt.Errorf("%w: truncated \\x escape in delimiter %q", errors.ErrInvalidConfig, s),
					"config", "ParseDelimiter", "escape parse")
			}
			v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return nil, errors.WrapConfiguration(
					fmt.Errorf("%w: bad \\x escape in delimiter %q", errors.ErrInvalidConfig, s),
					"config", "ParseDelimiter", "escape parse")
			}
			out = append(out, byte(v))
			i += 2
		default:
			return nil, errors.WrapConfiguration(
				fmt.Errorf("%w: unknown escape \\%c in delimiter %q", errors.ErrInvalidConfig, s[i], s),
				"config", "ParseDelimiter", "escape parse")
		}
	}

	return out, nil
}

func bytesReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}
