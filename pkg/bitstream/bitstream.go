package bitstream

import (
	"fmt"
	"strings"
)

// Bits is an ordered sequence of binary symbols. Order is significant
// and preserved by every operation in this package.
type Bits []bool

// FromBytes expands each byte to 8 bits, most significant bit first.
func FromBytes(data []byte) Bits {
	bits := make(Bits, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>i)&1 == 1)
		}
	}
	return bits
}

// Bytes consumes the stream in groups of 8 bits, most significant bit
// first. A trailing group shorter than 8 bits is discarded, not padded.
func (b Bits) Bytes() []byte {
	data := make([]byte, 0, len(b)/8)
	for i := 0; i+8 <= len(b); i += 8 {
		var v byte
		for j := 0; j < 8; j++ {
			if b[i+j] {
				v |= 1 << (7 - j)
			}
		}
		data = append(data, v)
	}
	return data
}

// FromString parses a "0"/"1" text form.
func FromString(s string) (Bits, error) {
	bits := make(Bits, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			bits = append(bits, false)
		case '1':
			bits = append(bits, true)
		default:
			return nil, fmt.Errorf("invalid bit %q at position %d", s[i], i)
		}
	}
	return bits, nil
}

func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, bit := range b {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// AppendUint appends the low width bits of v, most significant bit first.
func AppendUint(b Bits, v uint64, width int) Bits {
	for i := width - 1; i >= 0; i-- {
		b = append(b, (v>>i)&1 == 1)
	}
	return b
}

// Uint reads width bits starting at pos, most significant bit first.
// The caller is responsible for pos+width <= len(b).
func (b Bits) Uint(pos, width int) uint64 {
	var v uint64
	for i := 0; i < width; i++ {
		v <<= 1
		if b[pos+i] {
			v |= 1
		}
	}
	return v
}

// Checksum is the arithmetic sum of the byte values modulo 256.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}
