package frame

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/streamdash/errors"
)

func newEndOnly(t *testing.T, end string, opts ...Option) *Extractor {
	t.Helper()
	e, err := NewExtractor(EndDelimiterOnly, append([]Option{WithEndDelimiter([]byte(end))}, opts...)...)
	require.NoError(t, err)
	return e
}

func newStartEnd(t *testing.T, start, end string, opts ...Option) *Extractor {
	t.Helper()
	e, err := NewExtractor(StartAndEndDelimiter,
		append([]Option{WithStartDelimiter([]byte(start)), WithEndDelimiter([]byte(end))}, opts...)...)
	require.NoError(t, err)
	return e
}

func frameData(frames []Frame) []string {
	out := make([]string, 0, len(frames))
	for _, f := range frames {
		out = append(out, string(f.Data))
	}
	return out
}

func TestNewExtractor_ConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		mode Detection
		opts []Option
	}{
		{"end-only without end delimiter", EndDelimiterOnly, nil},
		{"start-end without start", StartAndEndDelimiter, []Option{WithEndDelimiter([]byte(">"))}},
		{"start-end without end", StartAndEndDelimiter, []Option{WithStartDelimiter([]byte("<"))}},
		{"identical delimiters", StartAndEndDelimiter, []Option{
			WithStartDelimiter([]byte("|")), WithEndDelimiter([]byte("|"))}},
		{"invalid mode", Detection(42), nil},
		{"non-positive frame bound", EndDelimiterOnly, []Option{
			WithEndDelimiter([]byte("\n")), WithMaxFrameSize(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExtractor(tt.mode, tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.IsConfiguration(err))
		})
	}
}

func TestEndOnly_BasicFraming(t *testing.T) {
	e := newEndOnly(t, "\n")

	frames := e.Write([]byte("A,1\nB,2\nC"))
	assert.Equal(t, []string{"A,1", "B,2"}, frameData(frames))

	// Trailing "C" stays buffered for the next read.
	assert.Equal(t, 1, e.Pending())

	frames = e.Write([]byte(",3\n"))
	assert.Equal(t, []string{"C,3"}, frameData(frames))
	assert.Zero(t, e.Pending())
}

func TestEndOnly_DelimiterSplitAcrossChunks(t *testing.T) {
	e := newEndOnly(t, "\r\n")

	assert.Empty(t, e.Write([]byte("frame1\r")))
	frames := e.Write([]byte("\nframe2\r\n"))
	assert.Equal(t, []string{"frame1", "frame2"}, frameData(frames))
}

func TestEndOnly_EmptyFrames(t *testing.T) {
	e := newEndOnly(t, ";")

	frames := e.Write([]byte(";;a;"))
	assert.Equal(t, []string{"", "", "a"}, frameData(frames))
}

func TestEndOnly_SequenceNumbersIncrease(t *testing.T) {
	e := newEndOnly(t, "\n")

	frames := e.Write([]byte("a\nb\nc\n"))
	require.Len(t, frames, 3)
	assert.Equal(t, uint64(1), frames[0].Seq)
	assert.Equal(t, uint64(2), frames[1].Seq)
	assert.Equal(t, uint64(3), frames[2].Seq)
}

func TestStartEnd_BasicFraming(t *testing.T) {
	e := newStartEnd(t, "<", ">")

	frames := e.Write([]byte("junk<data1>junk2<data2>"))
	assert.Equal(t, []string{"data1", "data2"}, frameData(frames))
}

func TestStartEnd_LeadingJunkDiscarded(t *testing.T) {
	e := newStartEnd(t, "<", ">")

	assert.Empty(t, e.Write([]byte("noise without delimiters")))
	frames := e.Write([]byte("<payload>"))
	assert.Equal(t, []string{"payload"}, frameData(frames))
	assert.Positive(t, e.Stats().BytesDiscarded)
}

func TestStartEnd_LastStartWins(t *testing.T) {
	e := newStartEnd(t, "<", ">")

	// The first start is orphaned by the second; only the innermost
	// candidate survives.
	frames := e.Write([]byte("<abc<def>"))
	assert.Equal(t, []string{"def"}, frameData(frames))
}

func TestStartEnd_MultiByteDelimitersSplitAcrossChunks(t *testing.T) {
	e := newStartEnd(t, "$$", "##")

	var got []string
	for _, chunk := range []string{"x$", "$pay", "load#", "#$$q##"} {
		got = append(got, frameData(e.Write([]byte(chunk)))...)
	}
	assert.Equal(t, []string{"payload", "q"}, got)
}

func TestStartEnd_PartialStartRetainedWhileSearching(t *testing.T) {
	e := newStartEnd(t, "$$", "##")

	assert.Empty(t, e.Write([]byte("junkjunk$")))
	frames := e.Write([]byte("$data##"))
	assert.Equal(t, []string{"data"}, frameData(frames))
}

func TestNoDelimiters_OneFramePerChunk(t *testing.T) {
	e, err := NewExtractor(NoDelimiters)
	require.NoError(t, err)

	frames := e.Write([]byte("whole message"))
	assert.Equal(t, []string{"whole message"}, frameData(frames))

	assert.Empty(t, e.Write(nil))
	assert.Zero(t, e.Pending())
}

func TestOverflow_DiscardsAndReports(t *testing.T) {
	var reported []error
	e := newEndOnly(t, "\n",
		WithMaxFrameSize(8),
		WithErrorHandler(func(err error) { reported = append(reported, err) }))

	assert.Empty(t, e.Write([]byte("0123456789abcdef")))

	// Buffered partial frame was discarded; scanning resumed clean.
	assert.Zero(t, e.Pending())
	assert.Equal(t, uint64(1), e.Stats().Overflows)
	require.Len(t, reported, 1)
	assert.True(t, errors.IsOverflow(reported[0]))

	frames := e.Write([]byte("ok\n"))
	assert.Equal(t, []string{"ok"}, frameData(frames))
}

func TestOverflow_StartEndResetsToSearching(t *testing.T) {
	e := newStartEnd(t, "<", ">", WithMaxFrameSize(4))

	assert.Empty(t, e.Write([]byte("<toolongpayload")))
	assert.Zero(t, e.Pending())

	// After the reset a fresh start delimiter is required again.
	assert.Empty(t, e.Write([]byte("tail>")))
	frames := e.Write([]byte("<ok>"))
	assert.Equal(t, []string{"ok"}, frameData(frames))
}

func TestReset_DiscardsWithoutEmitting(t *testing.T) {
	e := newEndOnly(t, "\n")

	assert.Empty(t, e.Write([]byte("partial frame")))
	assert.Positive(t, e.Pending())

	e.Reset()
	assert.Zero(t, e.Pending())

	frames := e.Write([]byte("next\n"))
	assert.Equal(t, []string{"next"}, frameData(frames))
	// Sequence numbering continues across Reset.
	assert.Equal(t, uint64(1), frames[0].Seq)
}

func TestFrameDataIsACopy(t *testing.T) {
	e := newEndOnly(t, "\n")

	chunk := []byte("abc\ndef")
	frames := e.Write(chunk)
	require.Len(t, frames, 1)

	chunk[0] = 'X'
	assert.Equal(t, "abc", string(frames[0].Data))
}

// Chunk-boundary independence: for any chunking of the stream the emitted
// frame sequence must equal the single-write result.
func TestChunkBoundaryIndependence(t *testing.T) {
	stream := []byte("<f1>##<f2>garbage<f3><<f4>trailing<incomplete")

	reference := newStartEnd(t, "<", ">")
	want := frameData(reference.Write(stream))
	require.Equal(t, []string{"f1", "f2", "f3", "f4"}, want)

	rng := rand.New(rand.NewPCG(7, 13))
	for trial := 0; trial < 200; trial++ {
		e := newStartEnd(t, "<", ">")
		var got []string
		rest := stream
		for len(rest) > 0 {
			n := 1 + rng.IntN(len(rest))
			got = append(got, frameData(e.Write(rest[:n]))...)
			rest = rest[n:]
		}
		require.Equal(t, want, got, "trial %d", trial)
	}
}

func TestChunkBoundaryIndependence_EndOnly(t *testing.T) {
	var stream []byte
	for i := 0; i < 50; i++ {
		stream = append(stream, bytes.Repeat([]byte{'a' + byte(i%26)}, i%7)...)
		stream = append(stream, "\r\n"...)
	}

	reference := newEndOnly(t, "\r\n")
	want := frameData(reference.Write(stream))

	rng := rand.New(rand.NewPCG(3, 5))
	for trial := 0; trial < 100; trial++ {
		e := newEndOnly(t, "\r\n")
		var got []string
		rest := stream
		for len(rest) > 0 {
			n := 1 + rng.IntN(min(len(rest), 9))
			got = append(got, frameData(e.Write(rest[:n]))...)
			rest = rest[n:]
		}
		require.Equal(t, want, got, "trial %d", trial)
	}
}
