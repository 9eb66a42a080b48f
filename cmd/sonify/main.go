package main

import "context"
import "flag"
import "fmt"
import "os"

import "github.com/neurlang/sonify/config"
import "github.com/neurlang/sonify/internal/logger"
import "github.com/neurlang/sonify/playback"
import "github.com/neurlang/sonify/session"

func main() {
	var (
		configPath  = flag.String("config", "", "YAML configuration file")
		output      = flag.String("o", "", "output audio file, .wav or .flac (default <image_file>.wav)")
		bits        = flag.Int("bits", 16, "WAV sample depth, 16 or 24")
		size        = flag.Int("size", 0, "image max size in pixels, 64-1024")
		density     = flag.Float64("density", 0, "grid density, 0.1-10")
		duration    = flag.Float64("duration", 0, "seconds of audio, 1-20")
		minFreq     = flag.Float64("min", 0, "lowest frequency in Hz, 20-1000")
		maxFreq     = flag.Float64("max", 0, "highest frequency in Hz, 1000-20000")
		rate        = flag.Int("rate", 0, "sample rate in Hz")
		threshold   = flag.Float64("threshold", -1, "amplitude threshold, configured value when negative")
		dense       = flag.Bool("dense", false, "sum every row, ignoring the threshold")
		topLow      = flag.Bool("top-low", false, "play the top row at the lowest frequency")
		spectrogram = flag.String("spectrogram", "", "write a spectrogram PNG")
		waveform    = flag.String("waveform", "", "write a waveform PNG")
		play        = flag.Bool("play", false, "play the result")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: sonify [flags] <image_file>")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Check if the filename argument is provided
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	var filename = flag.Arg(0)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}
	}

	// Flags override the configuration
	if *size > 0 {
		cfg.Image.MaxSize = *size
	}
	if *density > 0 {
		cfg.Image.Density = *density
	}
	if *duration > 0 {
		cfg.Sound.Duration = *duration
	}
	if *minFreq > 0 {
		cfg.Sound.MinFreq = *minFreq
	}
	if *maxFreq > 0 {
		cfg.Sound.MaxFreq = *maxFreq
	}
	if *rate > 0 {
		cfg.Synth.SampleRate = *rate
	}
	if *threshold >= 0 {
		cfg.Synth.Threshold = threshold
	}
	if *dense {
		cfg.Synth.Mode = "dense"
	}
	if *topLow {
		cfg.Synth.Orientation = "top-low"
	}
	if *output == "" {
		*output = filename + ".wav"
	}

	if err := run(cfg, filename, *output, *bits, *spectrogram, *waveform, *play); err != nil {
		fmt.Printf("Error generating sound from image: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(cfg *config.Config, filename, output string, bits int, spectrogram, waveform string, play bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logger.Init(cfg.Logger()); err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	var sink playback.Sink
	if play {
		sink, err = playback.New(cfg.Playback.Backend, cfg.PlaybackBuffer())
		if err != nil {
			return err
		}
	}
	sess := session.New(sink)
	defer sess.Close()
	sess.Sampler = cfg.Sampler()
	sess.Analyzer = cfg.Analyzer()
	sess.PlotOptions = cfg.PlotOptions()

	if err := sess.Open(filename); err != nil {
		return err
	}
	buf, err := sess.Render(context.Background(), settings)
	if err != nil {
		return err
	}
	if err := sess.Export(output, bits); err != nil {
		return err
	}
	logger.L.Infow("wrote audio", "file", output, "seconds", buf.Seconds(), "grid", settings.Width())

	plots := []struct {
		path string
		view session.View
	}{
		{spectrogram, session.ViewSpectrogram},
		{waveform, session.ViewWaveform},
	}
	for _, p := range plots {
		if p.path == "" {
			continue
		}
		if err := writePlot(sess, p.view, p.path); err != nil {
			return err
		}
		logger.L.Infow("wrote plot", "file", p.path, "view", p.view)
	}

	if play {
		h, err := sess.Play()
		if err != nil {
			return err
		}
		return h.Wait()
	}
	return nil
}

func writePlot(sess *session.Session, view session.View, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return sess.Plot(view, f)
}
