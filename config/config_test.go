package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/streamdash/decoder"
	"github.com/c360/streamdash/errors"
	"github.com/c360/streamdash/frame"
)

func TestDefaultSession_IsValid(t *testing.T) {
	s := DefaultSession()
	require.NoError(t, s.Validate())

	assert.Equal(t, decoder.PlainText, s.Decoder())
	assert.Equal(t, frame.EndDelimiterOnly, s.Detection())
	assert.Equal(t, QuickPlot, s.Mode())
	assert.Equal(t, []byte("\n"), s.EndDelimiterBytes())
}

func TestValidate_Matrix(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Session)
		ok     bool
	}{
		{"defaults", func(_ *Session) {}, true},
		{"hex decoder", func(s *Session) { s.DecoderMethod = "hex" }, true},
		{"bad decoder", func(s *Session) { s.DecoderMethod = "rot13" }, false},
		{"bad detection", func(s *Session) { s.FrameDetection = "sideways" }, false},
		{"bad operation mode", func(s *Session) { s.OperationMode = "psychic" }, false},
		{"end-only without end delimiter", func(s *Session) { s.EndDelimiter = "" }, false},
		{"start-end complete", func(s *Session) {
			s.FrameDetection = "start_and_end_delimiter"
			s.StartDelimiter = "<"
			s.EndDelimiter = ">"
		}, true},
		{"start-end missing start", func(s *Session) {
			s.FrameDetection = "start_and_end_delimiter"
			s.EndDelimiter = ">"
		}, false},
		{"no delimiters needs none", func(s *Session) {
			s.FrameDetection = "no_delimiters"
			s.EndDelimiter = ""
		}, true},
		{"negative workers", func(s *Session) { s.Workers = -1 }, false},
		{"bad delimiter escape", func(s *Session) { s.EndDelimiter = `\q` }, false},
		{"crc16 checksum", func(s *Session) { s.Checksum = "crc16" }, true},
		{"none checksum", func(s *Session) { s.Checksum = "none" }, true},
		{"bad checksum", func(s *Session) { s.Checksum = "md5" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSession()
			tt.mutate(&s)
			err := s.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, errors.IsConfiguration(err))
			}
		})
	}
}

func TestChecksumAlgorithm_Normalized(t *testing.T) {
	s := DefaultSession()
	assert.Empty(t, s.ChecksumAlgorithm())

	s.Checksum = "None"
	assert.Empty(t, s.ChecksumAlgorithm())

	s.Checksum = " CRC8 "
	assert.Equal(t, "crc8", s.ChecksumAlgorithm())
}

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		in      string
		want    []byte
		wantErr bool
	}{
		{``, nil, false},
		{`\n`, []byte("\n"), false},
		{`\r\n`, []byte("\r\n"), false},
		{`<`, []byte("<"), false},
		{`\t`, []byte("\t"), false},
		{`\0`, []byte{0}, false},
		{`\\n`, []byte(`\n`), false},
		{`\x7e\x7e`, []byte("~~"), false},
		{`end\n`, []byte("end\n"), false},
		{`\`, nil, true},
		{`\x7`, nil, true},
		{`\xzz`, nil, true},
		{`\q`, nil, true},
	}

	for _, tt := range tests {
		got, err := ParseDelimiter(tt.in)
		if tt.wantErr {
			require.Error(t, err, "input %q", tt.in)
			assert.True(t, errors.IsConfiguration(err))
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParse_AppliesDefaultsAndOverrides(t *testing.T) {
	s, err := Parse([]byte("decoder: hex\nend_delimiter: \";\"\n"))
	require.NoError(t, err)

	assert.Equal(t, decoder.Hexadecimal, s.Decoder())
	assert.Equal(t, []byte(";"), s.EndDelimiterBytes())
	// Unspecified fields keep quick-plot defaults.
	assert.Equal(t, frame.EndDelimiterOnly, s.Detection())
	assert.Equal(t, 4, s.Workers)
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	_, err := Parse([]byte("decoder: hex\nframe_detektion: end\n"))
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
}

func TestParse_InvalidSessionRejected(t *testing.T) {
	_, err := Parse([]byte("decoder: rot13\n"))
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")
	content := "decoder: base64\nframe_detection: start_and_end_delimiter\nstart_delimiter: \"$$\"\nend_delimiter: \";\"\nworkers: 8\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, decoder.Base64, s.Decoder())
	assert.Equal(t, frame.StartAndEndDelimiter, s.Detection())
	assert.Equal(t, 8, s.Workers)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
}
