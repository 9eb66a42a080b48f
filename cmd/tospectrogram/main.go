package main

import "flag"
import "fmt"
import "io"
import "os"

import "github.com/neurlang/sonify/config"
import "github.com/neurlang/sonify/internal/logger"
import "github.com/neurlang/sonify/pcm"
import "github.com/neurlang/sonify/plot"

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		window     = flag.Int("window", 0, "frame length in samples (default 1024)")
		maxFreq    = flag.Float64("max", 0, "upper edge of the frequency axis in Hz (default Nyquist)")
		half       = flag.Bool("half", false, "also write <audio_file>.f16 with the dB grid as float16")
		peak       = flag.Bool("peak", false, "print the dominant frequency")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tospectrogram [flags] <audio_file>")
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
	if *window > 0 {
		cfg.Analysis.Window = *window
	}
	if *maxFreq > 0 {
		cfg.Plot.MaxFrequency = *maxFreq
	}

	if err := run(cfg, filename, *half, *peak); err != nil {
		fmt.Printf("Error generating spectrogram: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(cfg *config.Config, filename string, half, peak bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logger.Init(cfg.Logger()); err != nil {
		return err
	}

	buf, err := pcm.Load(filename)
	if err != nil {
		return err
	}
	sg, err := cfg.Analyzer().Analyze(buf)
	if err != nil {
		return err
	}

	// Generate the spectrogram and save it as a PNG file
	outputFile := filename + ".png"
	opts := cfg.PlotOptions()
	opts.Title = filename
	if err := create(outputFile, func(w io.Writer) error { return plot.Spectrogram(w, sg, opts) }); err != nil {
		return err
	}
	logger.L.Infow("wrote spectrogram", "file", outputFile, "bins", len(sg.Frequencies), "frames", len(sg.Times))

	if half {
		halfFile := filename + ".f16"
		if err := create(halfFile, sg.WriteHalf); err != nil {
			return err
		}
		logger.L.Infow("wrote half dump", "file", halfFile)
	}
	if peak {
		fmt.Printf("%.1f Hz\n", sg.PeakFrequency())
	}
	return nil
}

func create(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
