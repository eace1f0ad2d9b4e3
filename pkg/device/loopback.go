package device

import "time"

// Loopback wires its own output back to its input, optionally with
// additive noise, so a sender/receiver pair can run without hardware.
type Loopback struct {
	SampleRate float64 // pacing rate, 0 means run as fast as possible
	Noise      int32   // peak amplitude of injected uniform noise
	done       chan struct{}
}

func (d *Loopback) Start(callback func(in, out []int32)) {
	d.done = make(chan struct{})
	go func() {
		in := alloci32(BufferSize)
		out := alloci32(BufferSize)

		update := func() {
			callback(in, out)
			copy(in, out)
			if d.Noise > 0 {
				addNoise(in, d.Noise)
			}
		}

		if d.SampleRate == 0 {
			for {
				select {
				case <-d.done:
					return
				default:
					update()
				}
			}
		}
		ticker := time.NewTicker(time.Duration(float64(BufferSize) / d.SampleRate * float64(time.Second)))
		defer ticker.Stop()
		for {
			select {
			case <-d.done:
				return
			case <-ticker.C:
				update()
			}
		}
	}()
}

func (d *Loopback) Stop() {
	close(d.done)
}
