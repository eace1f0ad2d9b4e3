package bitstream

import (
	"reflect"
	"testing"
)

func TestFromBytes(t *testing.T) {
	bits := FromBytes([]byte{0xA5, 0x01})
	if got, want := bits.String(), "1010010100000001"; got != want {
		t.Errorf("FromBytes = %s, want %s", got, want)
	}
	if len(bits) != 16 {
		t.Errorf("len = %d, want 16", len(bits))
	}
}

func TestBytesRoundTrip(t *testing.T) {
	data := []byte{0x00, 0xFF, 0x5A, 0x80, 0x01}
	if got := FromBytes(data).Bytes(); !reflect.DeepEqual(got, data) {
		t.Errorf("round trip = %v, want %v", got, data)
	}
}

func TestBytesDropsTrailingGroup(t *testing.T) {
	bits, err := FromString("11111111" + "1010101") // 8 + 7 bits
	if err != nil {
		t.Fatal(err)
	}
	got := bits.Bytes()
	if !reflect.DeepEqual(got, []byte{0xFF}) {
		t.Errorf("Bytes = %v, want [255]: trailing 7 bits must be discarded", got)
	}
}

func TestFromStringRejectsNonBits(t *testing.T) {
	if _, err := FromString("10102"); err == nil {
		t.Error("expected error for invalid symbol")
	}
}

func TestUintRoundTrip(t *testing.T) {
	var bits Bits
	bits = AppendUint(bits, 0xB, 4)
	bits = AppendUint(bits, 0xCD, 8)
	if got := bits.Uint(0, 4); got != 0xB {
		t.Errorf("Uint(0,4) = %#x, want 0xb", got)
	}
	if got := bits.Uint(4, 8); got != 0xCD {
		t.Errorf("Uint(4,8) = %#x, want 0xcd", got)
	}
	if got, want := bits.String(), "101111001101"; got != want {
		t.Errorf("String = %s, want %s", got, want)
	}
}

func TestChecksum(t *testing.T) {
	cases := []struct {
		data []byte
		want byte
	}{
		{nil, 0},
		{[]byte{1, 2, 3}, 6},
		{[]byte{255, 1}, 0},    // wraps mod 256
		{[]byte{200, 100}, 44}, // 300 mod 256
		{[]byte("Hi"), 'H' + 'i'},
	}
	for _, c := range cases {
		if got := Checksum(c.data); got != c.want {
			t.Errorf("Checksum(%v) = %d, want %d", c.data, got, c.want)
		}
	}
}
