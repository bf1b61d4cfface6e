package bus

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType_String(t *testing.T) {
	assert.Equal(t, "serial", Serial.String())
	assert.Equal(t, "network", Network.String())
	assert.Equal(t, "bluetooth_le", BluetoothLE.String())
	assert.Equal(t, "unknown", Type(9).String())
}

func TestTypeFromString(t *testing.T) {
	for in, want := range map[string]Type{
		"serial": Serial, "tcp": Network, "udp": Network,
		"Network": Network, "ble": BluetoothLE, "Bluetooth": BluetoothLE,
	} {
		got, ok := TypeFromString(in)
		assert.True(t, ok, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	_, ok := TypeFromString("carrier-pigeon")
	assert.False(t, ok)
}

func TestReaderSource_ReadsChunks(t *testing.T) {
	src := NewReaderSource(strings.NewReader("hello"), Serial)
	assert.Equal(t, Serial, src.Bus())

	chunk, err := src.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(chunk))

	_, err = src.Read(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderSource_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewReaderSource(strings.NewReader("data"), Network)
	_, err := src.Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
