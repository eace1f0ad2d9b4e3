package link

import (
	"bytes"
	"errors"
	"testing"

	"tonelink/pkg/modem"
)

var referenceParams = modem.Params{
	ZeroFreq:    17000,
	OneFreq:     18500,
	BitDuration: 0.08,
	SampleRate:  44100,
}

// fastParams keeps the multi-repeat tests quick without changing any
// behavior under test.
var fastParams = modem.Params{
	ZeroFreq:    1000,
	OneFreq:     2000,
	BitDuration: 0.005,
	SampleRate:  48000,
}

func TestEndToEndReferenceScenario(t *testing.T) {
	sender := Sender{Params: referenceParams, Repeat: 1, UnitID: 1}
	signal, err := sender.Data([]byte("Hi"))
	if err != nil {
		t.Fatal(err)
	}

	receiver := Receiver{Params: referenceParams, Repeat: 1}
	p, err := receiver.Data(signal)
	if err != nil {
		t.Fatal(err)
	}
	if p.UnitID != 1 {
		t.Errorf("unit id = %d, want 1", p.UnitID)
	}
	if string(p.Payload) != "Hi" {
		t.Errorf("payload = %q, want \"Hi\"", p.Payload)
	}
	if !p.ChecksumValid || !p.EndValid {
		t.Errorf("integrity verdict = checksum %v end %v, want both true", p.ChecksumValid, p.EndValid)
	}
}

func TestEndToEndWithRepetition(t *testing.T) {
	payload := []byte("vote")
	for _, repeat := range []int{1, 2, 3, 4} {
		sender := Sender{Params: fastParams, Repeat: repeat, UnitID: 9}
		signal, err := sender.Data(payload)
		if err != nil {
			t.Fatalf("repeat %d: %v", repeat, err)
		}

		receiver := Receiver{Params: fastParams, Repeat: repeat}
		p, err := receiver.Data(signal)
		if err != nil {
			t.Fatalf("repeat %d: %v", repeat, err)
		}
		if !p.Valid() || !bytes.Equal(p.Payload, payload) || p.UnitID != 9 {
			t.Errorf("repeat %d: decode mismatch: %+v", repeat, p)
		}
	}
}

func TestEndToEndAuth(t *testing.T) {
	sender := Sender{Params: fastParams, Repeat: 2, UnitID: 3}
	signal, err := sender.Auth("my_secret")
	if err != nil {
		t.Fatal(err)
	}

	receiver := Receiver{Params: fastParams, Repeat: 2}

	granted, err := receiver.Auth(signal, "my_secret")
	if err != nil {
		t.Fatal(err)
	}
	if !granted.Valid() || !granted.AuthChecked || !granted.AuthValid {
		t.Errorf("expected access granted, got %+v", granted)
	}

	denied, err := receiver.Auth(signal, "wrong_secret")
	if err != nil {
		t.Fatal(err)
	}
	if !denied.Valid() || !denied.AuthChecked || denied.AuthValid {
		t.Errorf("expected access denied, got %+v", denied)
	}

	unverified, err := receiver.Auth(signal, "")
	if err != nil {
		t.Fatal(err)
	}
	if unverified.AuthChecked {
		t.Errorf("empty secret must not produce an auth verdict")
	}
}

func TestReceiverNoStart(t *testing.T) {
	receiver := Receiver{Params: fastParams, Repeat: 1}

	silence := make([]float64, 100*fastParams.SamplesPerBit())
	if _, err := receiver.Data(silence); !errors.Is(err, ErrNoStart) {
		t.Errorf("silence: err = %v, want ErrNoStart", err)
	}
}

func TestSenderRejectsBadConfig(t *testing.T) {
	if _, err := (Sender{Params: fastParams, Repeat: 0, UnitID: 1}).Data([]byte("x")); err == nil {
		t.Error("repeat 0 must be rejected")
	}
	bad := fastParams
	bad.OneFreq = bad.ZeroFreq
	if _, err := (Sender{Params: bad, Repeat: 1, UnitID: 1}).Data([]byte("x")); err == nil {
		t.Error("equal tones must be rejected")
	}
	if _, err := (Receiver{Params: fastParams, Repeat: 0}).Data(nil); err == nil {
		t.Error("receiver repeat 0 must be rejected")
	}
}
