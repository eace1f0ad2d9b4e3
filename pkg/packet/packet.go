package packet

import (
	"encoding/hex"
	"errors"
	"unicode/utf8"

	"tonelink/pkg/bitstream"
)

// Wire format, bit exact.
//
// Data: PREAMBLE(32) START(8) UNIT(4) LENGTH(8) PAYLOAD(LENGTH*8) CHECKSUM(8) END(8)
// Auth: PREAMBLE(32) START(8) UNIT(4) TOKEN(32)                   CHECKSUM(8) END(8)
const (
	PreambleBits = 32
	StartFlag    = "11001100" // distinct from the alternating preamble
	EndFlag      = "11111111"

	MaxPayload = 255 // length field is 8 bits
)

var (
	ErrPayloadTooLarge = errors.New("payload exceeds 255 bytes")
	ErrTruncated       = errors.New("bitstream truncated inside packet")
)

var (
	preamble  = makePreamble()
	startFlag = mustBits(StartFlag)
	endFlag   = mustBits(EndFlag)
)

func makePreamble() bitstream.Bits {
	bits := make(bitstream.Bits, PreambleBits)
	for i := range bits {
		bits[i] = i%2 == 0 // 1010...
	}
	return bits
}

func mustBits(s string) bitstream.Bits {
	bits, err := bitstream.FromString(s)
	if err != nil {
		panic(err)
	}
	return bits
}

// BuildData frames a payload of up to 255 bytes. The unit id is carried
// masked to 4 bits and not validated further.
func BuildData(unitID byte, payload []byte) (bitstream.Bits, error) {
	if len(payload) > MaxPayload {
		return nil, ErrPayloadTooLarge
	}

	bits := make(bitstream.Bits, 0, PreambleBits+8+4+8+len(payload)*8+8+8)
	bits = append(bits, preamble...)
	bits = append(bits, startFlag...)
	bits = bitstream.AppendUint(bits, uint64(unitID&0x0F), 4)
	bits = bitstream.AppendUint(bits, uint64(len(payload)), 8)
	bits = append(bits, bitstream.FromBytes(payload)...)
	bits = bitstream.AppendUint(bits, uint64(bitstream.Checksum(payload)), 8)
	bits = append(bits, endFlag...)
	return bits, nil
}

// BuildAuth frames a 32-bit token derived from the secret. The checksum
// covers the 4 raw token bytes.
func BuildAuth(unitID byte, secret string) bitstream.Bits {
	token := DeriveToken(secret)

	bits := make(bitstream.Bits, 0, PreambleBits+8+4+32+8+8)
	bits = append(bits, preamble...)
	bits = append(bits, startFlag...)
	bits = bitstream.AppendUint(bits, uint64(unitID&0x0F), 4)
	bits = bitstream.AppendUint(bits, uint64(token.Value), 32)
	bits = bitstream.AppendUint(bits, uint64(bitstream.Checksum(token.Bytes[:])), 8)
	bits = append(bits, endFlag...)
	return bits
}

// DataPacket is the decoded form of a data frame. An integrity failure
// (checksum or end flag) is a verdict carried in the fields, not an error.
type DataPacket struct {
	UnitID           byte
	Payload          []byte
	ChecksumReceived byte
	ChecksumComputed byte
	ChecksumValid    bool
	EndValid         bool
}

func (p DataPacket) Valid() bool {
	return p.ChecksumValid && p.EndValid
}

// Text renders the payload as UTF-8 when possible, hex otherwise.
func (p DataPacket) Text() string {
	if utf8.Valid(p.Payload) {
		return string(p.Payload)
	}
	return hex.EncodeToString(p.Payload)
}

// AuthPacket is the decoded form of an auth frame. AuthValid is
// meaningful only when AuthChecked is set.
type AuthPacket struct {
	UnitID           byte
	Token            uint32
	TokenHex         string
	ChecksumReceived byte
	ChecksumComputed byte
	ChecksumValid    bool
	EndValid         bool
	AuthChecked      bool
	AuthValid        bool
}

func (p AuthPacket) Valid() bool {
	return p.ChecksumValid && p.EndValid
}

// ParseData reads a data frame at fixed offsets from start, where start
// indexes the first bit of the start flag. It fails with ErrTruncated
// when fewer bits remain than the declared field widths require.
func ParseData(bits bitstream.Bits, start int) (DataPacket, error) {
	pos := start + len(startFlag)
	if len(bits) < pos+4+8 {
		return DataPacket{}, ErrTruncated
	}

	unitID := byte(bits.Uint(pos, 4))
	pos += 4
	length := int(bits.Uint(pos, 8))
	pos += 8

	if len(bits) < pos+length*8+8+8 {
		return DataPacket{}, ErrTruncated
	}

	payload := bits[pos : pos+length*8].Bytes()
	pos += length * 8
	checksumRx := byte(bits.Uint(pos, 8))
	pos += 8
	end := bits[pos : pos+8]

	computed := bitstream.Checksum(payload)
	return DataPacket{
		UnitID:           unitID,
		Payload:          payload,
		ChecksumReceived: checksumRx,
		ChecksumComputed: computed,
		ChecksumValid:    checksumRx == computed,
		EndValid:         end.String() == EndFlag,
	}, nil
}

// ParseAuth reads an auth frame at fixed offsets from start. When
// expectedSecret is non-empty the expected token is derived and the
// packet carries an auth verdict; otherwise AuthChecked stays false.
func ParseAuth(bits bitstream.Bits, start int, expectedSecret string) (AuthPacket, error) {
	pos := start + len(startFlag)
	if len(bits) < pos+4+32+8+8 {
		return AuthPacket{}, ErrTruncated
	}

	unitID := byte(bits.Uint(pos, 4))
	pos += 4
	token := uint32(bits.Uint(pos, 32))
	pos += 32
	checksumRx := byte(bits.Uint(pos, 8))
	pos += 8
	end := bits[pos : pos+8]

	tok := tokenFromValue(token)
	computed := bitstream.Checksum(tok.Bytes[:])

	p := AuthPacket{
		UnitID:           unitID,
		Token:            token,
		TokenHex:         tok.Hex,
		ChecksumReceived: checksumRx,
		ChecksumComputed: computed,
		ChecksumValid:    checksumRx == computed,
		EndValid:         end.String() == EndFlag,
	}
	if expectedSecret != "" {
		p.AuthChecked = true
		p.AuthValid = tok.Hex == DeriveToken(expectedSecret).Hex
	}
	return p, nil
}
