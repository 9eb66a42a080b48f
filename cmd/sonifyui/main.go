package main

import "flag"
import "fmt"
import "os"

import "github.com/neurlang/sonify/config"
import "github.com/neurlang/sonify/internal/logger"
import "github.com/neurlang/sonify/internal/tui"
import "github.com/neurlang/sonify/playback"
import "github.com/neurlang/sonify/session"

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		output     = flag.String("o", "", "audio file written by 'w' (default <image_file>.wav)")
		bits       = flag.Int("bits", 16, "WAV sample depth, 16 or 24")
		plotFile   = flag.String("plot", "", "PNG refreshed after every render")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: sonifyui [flags] <image_file>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	var filename = flag.Arg(0)
	if *output == "" {
		*output = filename + ".wav"
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}
	}

	err := run(cfg, filename, tui.Options{Output: *output, Bits: *bits, PlotFile: *plotFile})
	logger.Sync()
	if err != nil {
		fmt.Printf("Error running session: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, filename string, opts tui.Options) error {
	lc := cfg.Logger()
	lc.Quiet = true
	if err := logger.Init(lc); err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	sink, err := playback.New(cfg.Playback.Backend, cfg.PlaybackBuffer())
	if err != nil {
		return err
	}
	sess := session.New(sink)
	defer sess.Close()
	sess.Sampler = cfg.Sampler()
	sess.Analyzer = cfg.Analyzer()
	sess.PlotOptions = cfg.PlotOptions()

	if err := sess.Open(filename); err != nil {
		return err
	}
	logger.L.Infow("session started", "image", filename, "settings", settings)
	return tui.Run(sess, settings, cfg.Debounce(), opts)
}
