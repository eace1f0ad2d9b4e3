package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tonelink/internal/config"
	"tonelink/pkg/device"
	"tonelink/pkg/link"
	"tonelink/pkg/modem"
	"tonelink/pkg/wav"
)

func main() {
	var (
		configPath  = flag.String("config", "", "session config file (yaml)")
		unitID      = flag.Int("unit-id", 1, "unit id (0-15)")
		data        = flag.String("data", "", "text payload to transmit (max 255 bytes)")
		secret      = flag.String("secret", "", "secret passphrase for the auth token")
		authMode    = flag.Bool("auth", false, "send a 32-bit auth token instead of data")
		output      = flag.String("out", "packet.wav", "output WAV file, empty to skip")
		play        = flag.Bool("play", false, "play the waveform on the configured audio device")
		f0          = flag.Float64("f0", 0, "override: tone for bit 0 (Hz)")
		f1          = flag.Float64("f1", 0, "override: tone for bit 1 (Hz)")
		bitDuration = flag.Float64("bit-duration", 0, "override: seconds per bit")
		sampleRate  = flag.Float64("sample-rate", 0, "override: samples per second")
		repeat      = flag.Int("repeat", 0, "override: bit repetition factor")
	)
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("configuration")
	}
	applyOverride(&cfg.Modem.ZeroFreq, *f0)
	applyOverride(&cfg.Modem.OneFreq, *f1)
	applyOverride(&cfg.Modem.BitDuration, *bitDuration)
	applyOverride(&cfg.Modem.SampleRate, *sampleRate)
	if *repeat > 0 {
		cfg.Modem.Repeat = *repeat
	}
	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuration")
	}

	sender := link.Sender{
		Params: cfg.Params(),
		Repeat: cfg.Modem.Repeat,
		UnitID: byte(*unitID),
	}

	var signal []float64
	switch {
	case *authMode:
		if *secret == "" {
			log.Fatal().Msg("-secret is required in auth mode")
		}
		log.Info().Int("unit_id", *unitID).Msg("auth mode: token derived from secret")
		signal, err = sender.Auth(*secret)
	default:
		if *data == "" {
			log.Fatal().Msg("-data is required (or use -auth with -secret)")
		}
		log.Info().Int("unit_id", *unitID).Str("payload", *data).Msg("data mode")
		signal, err = sender.Data([]byte(*data))
	}
	if err != nil {
		log.Fatal().Err(err).Msg("build failed")
	}

	signal = wav.Normalize(signal)
	bits := len(signal) / sender.Params.SamplesPerBit()
	log.Info().
		Int("bits", bits).
		Float64("f0", cfg.Modem.ZeroFreq).
		Float64("f1", cfg.Modem.OneFreq).
		Float64("tx_seconds", float64(bits)*cfg.Modem.BitDuration).
		Int("repeat", cfg.Modem.Repeat).
		Msg("waveform ready")

	if *output != "" {
		if err := wav.WriteFile(*output, signal, int(cfg.Modem.SampleRate), cfg.Audio.BitDepth); err != nil {
			log.Fatal().Err(err).Msg("wav write failed")
		}
		log.Info().Str("file", *output).Msg("wrote waveform")
	}

	if *play {
		dev := &device.ASIOMono{
			DeviceName: cfg.Audio.Device,
			SampleRate: cfg.Modem.SampleRate,
		}
		log.Info().Str("device", cfg.Audio.Device).Msg("playing")
		device.Play(dev, modem.Float64ToInt32(signal))
		log.Info().Msg("playback finished")
	}
}

func applyOverride(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}
