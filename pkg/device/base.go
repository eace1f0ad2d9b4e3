// Package device is the audio I/O collaborator: it moves complete
// int32 sample buffers between the sound hardware (or a loopback) and
// the caller. The modem core never touches a device directly.
package device

// Device drives a mono duplex audio stream. The callback runs on the
// device's own execution context with one input and one output buffer
// per period.
type Device interface {
	Start(callback func(in, out []int32))
	Stop()
}

const BufferSize = 512
