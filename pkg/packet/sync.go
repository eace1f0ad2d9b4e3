package packet

import "tonelink/pkg/bitstream"

// Repeat replicates each bit n times contiguously. Repetition covers
// the entire frame, preamble and flags included; n <= 1 is identity.
func Repeat(bits bitstream.Bits, n int) bitstream.Bits {
	if n <= 1 {
		return bits
	}
	out := make(bitstream.Bits, 0, len(bits)*n)
	for _, b := range bits {
		for i := 0; i < n; i++ {
			out = append(out, b)
		}
	}
	return out
}

// MajorityVote collapses consecutive groups of n bits to their majority
// value. A tied group (n even, half ones) votes 0 under the strict
// ones > zeros comparison; n <= 1 is identity.
func MajorityVote(bits bitstream.Bits, n int) bitstream.Bits {
	if n <= 1 {
		return bits
	}
	out := make(bitstream.Bits, 0, (len(bits)+n-1)/n)
	for i := 0; i < len(bits); i += n {
		group := bits[i:min(i+n, len(bits))]
		ones := 0
		for _, b := range group {
			if b {
				ones++
			}
		}
		out = append(out, ones > len(group)-ones)
	}
	return out
}

// FindStart locates the start flag in a voted bitstream and returns the
// bit index at the flag itself; callers advance past it. The search
// begins slightly before the nominal end of the preamble region so a
// small sync offset does not hide the flag, then falls back to an
// unconstrained scan. A missing flag reports ok == false.
func FindStart(bits bitstream.Bits, repeat int) (index int, ok bool) {
	preambleBits := PreambleBits
	if repeat > 1 {
		preambleBits = PreambleBits / repeat
	}
	from := max(0, preambleBits-len(startFlag))

	if i := indexOf(bits, startFlag, from); i >= 0 {
		return i, true
	}
	if i := indexOf(bits, startFlag, 0); i >= 0 {
		return i, true
	}
	return 0, false
}

func indexOf(bits, pattern bitstream.Bits, from int) int {
	for i := from; i+len(pattern) <= len(bits); i++ {
		match := true
		for j := range pattern {
			if bits[i+j] != pattern[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
