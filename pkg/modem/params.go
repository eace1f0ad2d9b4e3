package modem

import (
	"errors"
	"fmt"
)

// Params carries the tone pair and timing a sender/receiver pair must
// share. It is threaded explicitly through every call; there are no
// package-level defaults to race over.
type Params struct {
	ZeroFreq    float64 // tone for bit 0, Hz
	OneFreq     float64 // tone for bit 1, Hz
	BitDuration float64 // seconds per symbol
	SampleRate  float64 // samples per second
}

var errSameFreq = errors.New("zero and one tones must differ")

// Validate rejects unusable parameters before any signal processing.
func (p Params) Validate() error {
	if p.SampleRate <= 0 {
		return fmt.Errorf("sample rate %v must be positive", p.SampleRate)
	}
	if p.BitDuration <= 0 {
		return fmt.Errorf("bit duration %v must be positive", p.BitDuration)
	}
	if p.ZeroFreq <= 0 || p.OneFreq <= 0 {
		return fmt.Errorf("tones %v/%v must be positive", p.ZeroFreq, p.OneFreq)
	}
	if p.ZeroFreq == p.OneFreq {
		return errSameFreq
	}
	nyquist := p.SampleRate / 2
	if p.ZeroFreq >= nyquist || p.OneFreq >= nyquist {
		return fmt.Errorf("tones %v/%v must stay below the Nyquist limit %v", p.ZeroFreq, p.OneFreq, nyquist)
	}
	if p.SamplesPerBit() < 1 {
		return fmt.Errorf("bit duration %v too short for sample rate %v", p.BitDuration, p.SampleRate)
	}
	return nil
}

// SamplesPerBit is the whole number of samples in one symbol window.
func (p Params) SamplesPerBit() int {
	return int(p.BitDuration * p.SampleRate)
}
