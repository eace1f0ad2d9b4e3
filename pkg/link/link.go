// Package link composes framing, repetition and modulation into one
// value per session, so sender and receiver carry a single explicit
// parameter set end to end.
package link

import (
	"errors"
	"fmt"

	"tonelink/pkg/bitstream"
	"tonelink/pkg/modem"
	"tonelink/pkg/packet"
)

// ErrNoStart reports that no start flag was found in the decoded
// bitstream. It is a recoverable outcome: the caller may retry with a
// longer capture or different parameters.
var ErrNoStart = errors.New("start flag not found")

type Sender struct {
	Params modem.Params
	Repeat int
	UnitID byte
}

// Data frames payload and returns the modulated waveform.
func (s Sender) Data(payload []byte) ([]float64, error) {
	frame, err := packet.BuildData(s.UnitID, payload)
	if err != nil {
		return nil, err
	}
	return s.transmit(frame)
}

// Auth frames a token derived from secret and returns the waveform.
func (s Sender) Auth(secret string) ([]float64, error) {
	return s.transmit(packet.BuildAuth(s.UnitID, secret))
}

func (s Sender) transmit(frame bitstream.Bits) ([]float64, error) {
	if s.Repeat < 1 {
		return nil, fmt.Errorf("repeat %d must be at least 1", s.Repeat)
	}
	return modem.Modulator{Params: s.Params}.Modulate(packet.Repeat(frame, s.Repeat))
}

type Receiver struct {
	Params modem.Params
	Repeat int
}

// Data demodulates samples and parses a data frame out of them.
func (r Receiver) Data(samples []float64) (packet.DataPacket, error) {
	bits, start, err := r.synchronize(samples)
	if err != nil {
		return packet.DataPacket{}, err
	}
	return packet.ParseData(bits, start)
}

// Auth demodulates samples and parses an auth frame. An empty
// expectedSecret skips the token verdict.
func (r Receiver) Auth(samples []float64, expectedSecret string) (packet.AuthPacket, error) {
	bits, start, err := r.synchronize(samples)
	if err != nil {
		return packet.AuthPacket{}, err
	}
	return packet.ParseAuth(bits, start, expectedSecret)
}

func (r Receiver) synchronize(samples []float64) (bitstream.Bits, int, error) {
	if r.Repeat < 1 {
		return nil, 0, fmt.Errorf("repeat %d must be at least 1", r.Repeat)
	}
	raw, err := modem.Demodulator{Params: r.Params}.Demodulate(samples)
	if err != nil {
		return nil, 0, err
	}
	bits := packet.MajorityVote(raw, r.Repeat)
	start, ok := packet.FindStart(bits, r.Repeat)
	if !ok {
		return nil, 0, ErrNoStart
	}
	return bits, start, nil
}
