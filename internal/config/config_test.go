package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tonelink.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Modem.ZeroFreq != 17000 || cfg.Modem.OneFreq != 18500 {
		t.Errorf("unexpected default tones: %+v", cfg.Modem)
	}
	if cfg.Modem.Repeat != 1 {
		t.Errorf("default repeat = %d, want 1", cfg.Modem.Repeat)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
modem:
  f0: 16000
  f1: 17500
  repeat: 3
audio:
  bit_depth: 32
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Modem.ZeroFreq != 16000 || cfg.Modem.OneFreq != 17500 {
		t.Errorf("tones = %v/%v, want 16000/17500", cfg.Modem.ZeroFreq, cfg.Modem.OneFreq)
	}
	if cfg.Modem.Repeat != 3 {
		t.Errorf("repeat = %d, want 3", cfg.Modem.Repeat)
	}
	if cfg.Audio.BitDepth != 32 {
		t.Errorf("bit depth = %d, want 32", cfg.Audio.BitDepth)
	}
	// untouched fields keep defaults
	if cfg.Modem.BitDuration != 0.08 || cfg.Modem.SampleRate != 44100 {
		t.Errorf("defaults lost: %+v", cfg.Modem)
	}

	p := cfg.Params()
	if p.ZeroFreq != 16000 || p.SampleRate != 44100 {
		t.Errorf("Params() mismatch: %+v", p)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"equal tones", "modem:\n  f0: 17000\n  f1: 17000\n"},
		{"negative repeat", "modem:\n  repeat: -1\n"},
		{"bad bit depth", "audio:\n  bit_depth: 24\n"},
		{"tone above nyquist", "modem:\n  f1: 30000\n"},
		{"not yaml", "{{{"},
	}
	for _, c := range cases {
		if _, err := Load(writeConfig(t, c.content)); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file must report an error")
	}
}
