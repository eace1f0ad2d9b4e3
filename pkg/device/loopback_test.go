package device

import (
	"testing"
	"time"
)

func TestLoopbackPlayRecord(t *testing.T) {
	track := make([]int32, 4*BufferSize)
	for i := range track {
		track[i] = int32(i) * 1000
	}

	player := NewPlayer(track)
	// the loopback feeds each period's output into the next period's
	// input, so the capture starts one buffer of silence late
	recorder := NewRecorder(len(track) + BufferSize)

	dev := &Loopback{}
	dev.Start(func(in, out []int32) {
		recorder.Update(in, make([]int32, 0))
		player.Update(in, out)
	})
	select {
	case <-recorder.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("recorder did not fill")
	}
	dev.Stop()

	got := recorder.Track
	for i := 0; i < BufferSize; i++ {
		if got[i] != 0 {
			t.Fatalf("sample %d = %d, want leading silence", i, got[i])
		}
	}
	for i, want := range track {
		if got[BufferSize+i] != want {
			t.Fatalf("sample %d = %d, want %d", i, got[BufferSize+i], want)
		}
	}
}

func TestRecorderStopsAtLimit(t *testing.T) {
	recorder := NewRecorder(10)
	in := []int32{1, 2, 3, 4, 5, 6, 7}
	out := make([]int32, len(in))

	recorder.Update(in, out)
	recorder.Update(in, out)
	recorder.Update(in, out)

	if len(recorder.Track) != 10 {
		t.Errorf("track length = %d, want 10", len(recorder.Track))
	}
	select {
	case <-recorder.Done():
	default:
		t.Error("recorder must report completion at its limit")
	}
}

func TestPlayerPadsWithSilence(t *testing.T) {
	player := NewPlayer([]int32{5, 6, 7})
	out := make([]int32, 8)
	player.Update(nil, out)

	want := []int32{5, 6, 7, 0, 0, 0, 0, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
	select {
	case <-player.Done():
	default:
		t.Error("player must report completion once the track is written")
	}
}
