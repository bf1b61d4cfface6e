package pipeline

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/c360/streamdash/errors"
)

// checksumSize maps an algorithm name to the number of trailing bytes it
// occupies in a frame.
func checksumSize(algo string) int {
	switch algo {
	case "crc8":
		return 1
	case "crc16":
		return 2
	case "crc32":
		return 4
	default:
		return 0
	}
}

// verifyChecksum validates and strips the trailing checksum of a frame
// payload. The checksum covers every byte before it and is transmitted
// big-endian. Returns the payload without the checksum bytes.
func verifyChecksum(algo string, data []byte) ([]byte, error) {
	size := checksumSize(algo)
	if size == 0 {
		return data, nil
	}
	if len(data) < size {
		return nil, errors.WrapDecode(
			fmt.Errorf("%w: frame of %d bytes cannot hold a %s checksum",
				errors.ErrChecksumMismatch, len(data), algo),
			"checksum", "verifyChecksum", "length check")
	}

	payload, trailer := data[:len(data)-size], data[len(data)-size:]

	var want, got uint32
	switch algo {
	case "crc8":
		want = uint32(trailer[0])
		got = uint32(crc8(payload))
	case "crc16":
		want = uint32(binary.BigEndian.Uint16(trailer))
		got = uint32(crc16(payload))
	case "crc32":
		want = binary.BigEndian.Uint32(trailer)
		got = crc32.ChecksumIEEE(payload)
	}

	if want != got {
		return nil, errors.WrapDecode(
			fmt.Errorf("%w: %s expected %#x, computed %#x",
				errors.ErrChecksumMismatch, algo, want, got),
			"checksum", "verifyChecksum", "comparison")
	}
	return payload, nil
}

// crc8 computes CRC-8 with polynomial 0x07 and zero initial value.
func crc8(data []byte) uint8 {
	var crc uint8
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x07
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// crc16 computes CRC-16/CCITT-FALSE: polynomial 0x1021, initial 0xFFFF.
func crc16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
