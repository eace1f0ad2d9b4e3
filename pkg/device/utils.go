package device

import "golang.org/x/exp/rand"

func alloci32(n int) []int32 {
	return make([]int32, n)
}

func cleari32(a []int32) {
	for i := range a {
		a[i] = 0
	}
}

func addNoise(a []int32, peak int32) {
	for i := range a {
		n := rand.Int63n(int64(peak)*2+1) - int64(peak)
		s := int64(a[i]) + n
		if s > 0x7fffffff {
			s = 0x7fffffff
		} else if s < -0x80000000 {
			s = -0x80000000
		}
		a[i] = int32(s)
	}
}
