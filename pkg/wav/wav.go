// Package wav reads and writes mono PCM WAV containers for the modem.
// Integer/float scaling and amplitude normalization live here; the
// modem core only ever sees normalized float samples.
package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// Header is the canonical 44-byte RIFF/WAVE PCM header.
type Header struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32
}

const headerSize = 44

// Encode renders normalized float samples as a mono PCM WAV blob.
// bitDepth selects 16- or 32-bit integer samples.
func Encode(samples []float64, sampleRate int, bitDepth int) ([]byte, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("cannot encode empty sample buffer")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if bitDepth != 16 && bitDepth != 32 {
		return nil, fmt.Errorf("unsupported bit depth %d (16 or 32)", bitDepth)
	}

	bytesPerSample := bitDepth / 8
	dataSize := uint32(len(samples) * bytesPerSample)
	header := Header{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   1,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * bytesPerSample),
		BlockAlign:    uint16(bytesPerSample),
		BitsPerSample: uint16(bitDepth),
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	buf := bytes.NewBuffer(make([]byte, 0, headerSize+int(dataSize)))
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}
	switch bitDepth {
	case 16:
		pcm := make([]int16, len(samples))
		for i, s := range samples {
			pcm[i] = int16(clamp(s) * 32767)
		}
		if err := binary.Write(buf, binary.LittleEndian, pcm); err != nil {
			return nil, fmt.Errorf("failed to write sample data: %w", err)
		}
	case 32:
		pcm := make([]int32, len(samples))
		for i, s := range samples {
			pcm[i] = int32(clamp(s) * 0x7fffffff)
		}
		if err := binary.Write(buf, binary.LittleEndian, pcm); err != nil {
			return nil, fmt.Errorf("failed to write sample data: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// Decode parses a PCM WAV blob into normalized float samples and the
// container's sample rate. Multichannel data collapses to the first
// channel; 16-bit samples scale by 32768, 32-bit by 2^31.
func Decode(data []byte) ([]float64, int, error) {
	if len(data) < headerSize {
		return nil, 0, fmt.Errorf("WAV data too short: need %d bytes, got %d", headerSize, len(data))
	}

	var header Header
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &header); err != nil {
		return nil, 0, fmt.Errorf("failed to read WAV header: %w", err)
	}
	if string(header.ChunkID[:]) != "RIFF" || string(header.Format[:]) != "WAVE" {
		return nil, 0, fmt.Errorf("not a RIFF/WAVE file")
	}
	if string(header.Subchunk1ID[:]) != "fmt " || string(header.Subchunk2ID[:]) != "data" {
		return nil, 0, fmt.Errorf("malformed WAV chunk layout")
	}
	if header.AudioFormat != 1 {
		return nil, 0, fmt.Errorf("unsupported audio format %d (PCM only)", header.AudioFormat)
	}
	if header.NumChannels < 1 {
		return nil, 0, fmt.Errorf("invalid channel count %d", header.NumChannels)
	}

	channels := int(header.NumChannels)
	body := data[headerSize:]
	switch header.BitsPerSample {
	case 16:
		frames := len(body) / 2 / channels
		pcm := make([]int16, frames*channels)
		if err := binary.Read(bytes.NewReader(body), binary.LittleEndian, &pcm); err != nil {
			return nil, 0, fmt.Errorf("failed to read sample data: %w", err)
		}
		samples := make([]float64, frames)
		for i := range samples {
			samples[i] = float64(pcm[i*channels]) / 32768.0
		}
		return samples, int(header.SampleRate), nil
	case 32:
		frames := len(body) / 4 / channels
		pcm := make([]int32, frames*channels)
		if err := binary.Read(bytes.NewReader(body), binary.LittleEndian, &pcm); err != nil {
			return nil, 0, fmt.Errorf("failed to read sample data: %w", err)
		}
		samples := make([]float64, frames)
		for i := range samples {
			samples[i] = float64(pcm[i*channels]) / 2147483648.0
		}
		return samples, int(header.SampleRate), nil
	default:
		return nil, 0, fmt.Errorf("unsupported bit depth %d (16 or 32)", header.BitsPerSample)
	}
}

// Normalize scales samples so the peak magnitude is 1. A silent buffer
// comes back unchanged.
func Normalize(samples []float64) []float64 {
	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s))
	}
	out := make([]float64, len(samples))
	if peak == 0 {
		copy(out, samples)
		return out
	}
	for i, s := range samples {
		out[i] = s / peak
	}
	return out
}

// WriteFile encodes samples and writes them to path.
func WriteFile(path string, samples []float64, sampleRate, bitDepth int) error {
	data, err := Encode(samples, sampleRate, bitDepth)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads and decodes the WAV file at path.
func ReadFile(path string) ([]float64, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode(data)
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
