// Package polyline implements the compact encoded-polyline representation
// used by routing backends for path geometry (delta-encoded coordinates,
// base-32 variable-length integers, 1e5 scale, roughly 1.1m precision).
//
// Decoding is strict: a truncated or corrupted string yields
// ErrMalformedGeometry and never a partial coordinate sequence, because map
// rendering downstream assumes a complete path.
package polyline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedGeometry indicates that an encoded polyline could not be decoded.
var ErrMalformedGeometry = errors.New("malformed geometry")

const (
	scale      = 1e5
	chunkBits  = 5
	chunkMask  = 0x1f
	chunkCont  = 0x20
	charOffset = 63
	// maxShift bounds varint length; a well-formed scaled coordinate fits in
	// seven 5-bit chunks.
	maxShift = 35
)

// LatLng is a single decoded coordinate pair in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// Encode converts a coordinate sequence into its encoded polyline form.
// An empty sequence encodes to the empty string.
func Encode(coords []LatLng) string {
	var sb strings.Builder

	var prevLat, prevLng int64
	for _, c := range coords {
		lat := round(c.Lat * scale)
		lng := round(c.Lng * scale)

		encodeValue(&sb, lat-prevLat)
		encodeValue(&sb, lng-prevLng)

		prevLat = lat
		prevLng = lng
	}

	return sb.String()
}

// Decode converts an encoded polyline back into its coordinate sequence.
// The empty string decodes to an empty sequence. Any malformed input
// (truncated varint, dangling latitude without a longitude, or characters
// outside the encoding alphabet) returns ErrMalformedGeometry.
func Decode(encoded string) ([]LatLng, error) {
	coords := make([]LatLng, 0, len(encoded)/4)

	var lat, lng int64
	index := 0
	for index < len(encoded) {
		dLat, next, err := decodeValue(encoded, index)
		if err != nil {
			return nil, err
		}

		dLng, next, err := decodeValue(encoded, next)
		if err != nil {
			return nil, fmt.Errorf("%w: latitude without longitude at offset %d", ErrMalformedGeometry, index)
		}

		lat += dLat
		lng += dLng
		index = next

		coords = append(coords, LatLng{Lat: float64(lat) / scale, Lng: float64(lng) / scale})
	}

	return coords, nil
}

func encodeValue(sb *strings.Builder, value int64) {
	v := value << 1
	if value < 0 {
		v = ^v
	}

	for v >= chunkCont {
		sb.WriteByte(byte(chunkCont|(v&chunkMask)) + charOffset)
		v >>= chunkBits
	}
	sb.WriteByte(byte(v) + charOffset)
}

func decodeValue(encoded string, index int) (int64, int, error) {
	var result int64
	shift := uint(0)

	for {
		if index >= len(encoded) {
			return 0, 0, fmt.Errorf("%w: truncated value", ErrMalformedGeometry)
		}
		if shift > maxShift {
			return 0, 0, fmt.Errorf("%w: value overflow", ErrMalformedGeometry)
		}

		ch := encoded[index]
		if ch < charOffset {
			return 0, 0, fmt.Errorf("%w: invalid character %q", ErrMalformedGeometry, ch)
		}

		b := int64(ch - charOffset)
		result |= (b & chunkMask) << shift
		shift += chunkBits
		index++

		if b < chunkCont {
			break
		}
	}

	if result&1 != 0 {
		return ^(result >> 1), index, nil
	}
	return result >> 1, index, nil
}

func round(v float64) int64 {
	if v < 0 {
		return int64(v - 0.5)
	}
	return int64(v + 0.5)
}
