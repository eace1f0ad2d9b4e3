package device

// Player feeds a fixed track into a device's output buffers, then
// silence. Done is closed once the last track sample has been written.
type Player struct {
	Track []int32
	idx   int
	done  chan struct{}
}

func NewPlayer(track []int32) *Player {
	return &Player{Track: track, done: make(chan struct{})}
}

func (p *Player) Update(in, out []int32) {
	n := copy(out, p.Track[p.idx:])
	p.idx += n
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
	if p.idx >= len(p.Track) {
		select {
		case <-p.done:
		default:
			close(p.done)
		}
	}
}

func (p *Player) Done() <-chan struct{} {
	return p.done
}

// Recorder accumulates input samples up to Limit, then closes Done.
// Stopping the device mid-capture simply leaves a shorter track.
type Recorder struct {
	Limit int
	Track []int32
	done  chan struct{}
}

func NewRecorder(limit int) *Recorder {
	return &Recorder{Limit: limit, done: make(chan struct{})}
}

func (r *Recorder) Update(in, out []int32) {
	cleari32(out)
	if len(r.Track) >= r.Limit {
		return
	}
	remain := r.Limit - len(r.Track)
	if remain > len(in) {
		r.Track = append(r.Track, in...)
		return
	}
	r.Track = append(r.Track, in[:remain]...)
	select {
	case <-r.done:
	default:
		close(r.done)
	}
}

func (r *Recorder) Done() <-chan struct{} {
	return r.done
}

// Play writes track through dev and blocks until it has been consumed.
func Play(dev Device, track []int32) {
	player := NewPlayer(track)
	dev.Start(player.Update)
	defer dev.Stop()
	<-player.Done()
}

// Record captures exactly n samples from dev and returns them as one
// complete buffer.
func Record(dev Device, n int) []int32 {
	recorder := NewRecorder(n)
	dev.Start(recorder.Update)
	defer dev.Stop()
	<-recorder.Done()
	return recorder.Track
}
