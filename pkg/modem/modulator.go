package modem

import (
	"math"

	"tonelink/pkg/bitstream"
)

// Modulator synthesizes a binary FSK waveform with continuous phase:
// the phase accumulator runs across bit boundaries, never resetting, so
// no transition click smears energy away from the two tones.
type Modulator struct {
	Params
}

// Modulate renders one sine sample per tick, selecting OneFreq for set
// bits and ZeroFreq otherwise. Output amplitude is raw sin(phase);
// normalization belongs to the audio output collaborator.
func (m Modulator) Modulate(bits bitstream.Bits) ([]float64, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	samplesPerBit := m.SamplesPerBit()
	signal := make([]float64, 0, len(bits)*samplesPerBit)

	phase := 0.0
	for _, bit := range bits {
		freq := m.ZeroFreq
		if bit {
			freq = m.OneFreq
		}
		step := 2 * math.Pi * freq / m.SampleRate
		for j := 0; j < samplesPerBit; j++ {
			signal = append(signal, math.Sin(phase))
			phase += step
			// bound numerical growth without breaking continuity
			if phase > 2*math.Pi {
				phase -= 2 * math.Pi
			}
		}
	}
	return signal, nil
}
