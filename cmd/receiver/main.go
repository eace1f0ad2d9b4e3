package main

import (
	"errors"
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
		input       = flag.String("in", "", "input WAV file to decode")
		record      = flag.Float64("record", 0, "record duration in seconds from the audio device")
		authMode    = flag.Bool("auth", false, "parse as a 32-bit auth token packet")
		secret      = flag.String("secret", "", "expected secret for auth verification")
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

	var signal []float64
	switch {
	case *input != "":
		samples, rate, err := wav.ReadFile(*input)
		if err != nil {
			log.Fatal().Err(err).Msg("wav read failed")
		}
		if float64(rate) != cfg.Modem.SampleRate {
			log.Warn().Int("file_rate", rate).Float64("expected_rate", cfg.Modem.SampleRate).
				Msg("WAV sample rate differs from session parameters")
		}
		signal = samples
		log.Info().Str("file", *input).Int("samples", len(signal)).Msg("loaded waveform")
	case *record > 0:
		dev := &device.ASIOMono{
			DeviceName: cfg.Audio.Device,
			SampleRate: cfg.Modem.SampleRate,
		}
		n := int(*record * cfg.Modem.SampleRate)
		log.Info().Str("device", cfg.Audio.Device).Float64("seconds", *record).Msg("recording")
		signal = modem.Int32ToFloat64(device.Record(dev, n))
		log.Info().Int("samples", len(signal)).Msg("recording finished")
	default:
		log.Fatal().Msg("specify -in or -record")
	}

	receiver := link.Receiver{
		Params: cfg.Params(),
		Repeat: cfg.Modem.Repeat,
	}

	if *authMode {
		reportAuth(receiver, signal, *secret)
	} else {
		reportData(receiver, signal)
	}
}

func reportData(receiver link.Receiver, signal []float64) {
	p, err := receiver.Data(signal)
	if err != nil {
		decodeFailure(err)
		return
	}
	log.Info().
		Uint8("unit_id", p.UnitID).
		Str("payload", p.Text()).
		Uint8("checksum_rx", p.ChecksumReceived).
		Uint8("checksum_calc", p.ChecksumComputed).
		Bool("checksum_valid", p.ChecksumValid).
		Bool("end_valid", p.EndValid).
		Msg("decoded data packet")
	if p.Valid() {
		log.Info().Msg("packet valid")
	} else {
		log.Warn().Msg("packet invalid")
	}
}

func reportAuth(receiver link.Receiver, signal []float64, secret string) {
	p, err := receiver.Auth(signal, secret)
	if err != nil {
		decodeFailure(err)
		return
	}
	log.Info().
		Uint8("unit_id", p.UnitID).
		Str("token", p.TokenHex).
		Uint8("checksum_rx", p.ChecksumReceived).
		Uint8("checksum_calc", p.ChecksumComputed).
		Bool("checksum_valid", p.ChecksumValid).
		Bool("end_valid", p.EndValid).
		Msg("decoded auth packet")
	switch {
	case !p.Valid():
		log.Warn().Msg("packet invalid")
	case !p.AuthChecked:
		log.Info().Msg("packet valid (no secret supplied, token unverified)")
	case p.AuthValid:
		log.Info().Msg("access granted")
	default:
		log.Warn().Msg("access denied (token mismatch)")
	}
}

// decodeFailure distinguishes a recoverable missing-sync outcome from a
// structural decode fault; neither is a process failure, the exit code
// stays zero so scripted retries can act on the log alone.
func decodeFailure(err error) {
	switch {
	case errors.Is(err, link.ErrNoStart):
		log.Warn().Msg("start flag not found; retry with a longer capture")
	default:
		log.Error().Err(err).Msg("decode failed")
	}
}

func applyOverride(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}
