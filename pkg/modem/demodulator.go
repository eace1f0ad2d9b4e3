package modem

import (
	"math"

	"tonelink/pkg/bitstream"
)

// Demodulator recovers a bitstream from a sample buffer by spectral
// comparison. It has no framing awareness: every whole bit window
// yields one hard decision, and a trailing partial window is dropped.
type Demodulator struct {
	Params
}

// Demodulate tapers each bit window with a Hann window, measures the
// DFT magnitude at the bins nearest the two tones and decides 1 only on
// a strict win for the one-tone; an exact tie decides 0.
func (d Demodulator) Demodulate(signal []float64) (bitstream.Bits, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	samplesPerBit := d.SamplesPerBit()
	numBits := len(signal) / samplesPerBit

	taper := hann(samplesPerBit)
	bin0 := nearestBin(d.ZeroFreq, samplesPerBit, d.SampleRate)
	bin1 := nearestBin(d.OneFreq, samplesPerBit, d.SampleRate)

	bits := make(bitstream.Bits, 0, numBits)
	window := make([]float64, samplesPerBit)
	for i := 0; i < numBits; i++ {
		chunk := signal[i*samplesPerBit : (i+1)*samplesPerBit]
		for j, s := range chunk {
			window[j] = s * taper[j]
		}
		bits = append(bits, binMagnitude(window, bin1) > binMagnitude(window, bin0))
	}
	return bits, nil
}

// hann is the symmetric raised-cosine taper of length n.
func hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

// nearestBin is the index of the DFT bin whose frequency is closest to
// f, restricted to the non-negative half of the spectrum.
func nearestBin(f float64, n int, sampleRate float64) int {
	k := int(math.Round(f * float64(n) / sampleRate))
	maxPositive := (n - 1) / 2
	if n%2 == 0 {
		maxPositive = n/2 - 1
	}
	if k > maxPositive {
		k = maxPositive
	}
	return k
}

// binMagnitude evaluates |X[k]| of the length-n DFT directly; the
// demodulator only ever needs two bins per window, so a full transform
// buys nothing.
func binMagnitude(window []float64, k int) float64 {
	n := len(window)
	step := -2 * math.Pi * float64(k) / float64(n)
	var re, im float64
	for i, v := range window {
		s, c := math.Sincos(step * float64(i))
		re += v * c
		im += v * s
	}
	return math.Hypot(re, im)
}
