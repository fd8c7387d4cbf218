// Command loopinfo prints tempo, key, and chord analysis of WAV files.
//
// Usage:
//
//	loopinfo [flags] file.wav [file.wav ...]
//
// Multi-channel files are mixed down to mono before analysis.
//
// Examples:
//
//	loopinfo take1.wav
//	loopinfo -config analysis.yaml take1.wav take2.wav
//	loopinfo -verbose -workers 4 session/*.wav
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-loop/analysis"
	"github.com/cwbudde/algo-loop/codec/wav"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML analysis config")
	workers := flag.Int("workers", 0, "number of analysis workers (overrides config)")
	verbose := flag.Bool("verbose", false, "log analysis progress to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: loopinfo [flags] file.wav [file.wav ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints tempo, key, and chord analysis of WAV files.\n")
		fmt.Fprintf(os.Stderr, "Multi-channel files are mixed down to mono before analysis.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  loopinfo take1.wav\n")
		fmt.Fprintf(os.Stderr, "  loopinfo -config analysis.yaml take1.wav take2.wav\n")
		fmt.Fprintf(os.Stderr, "  loopinfo -verbose -workers 4 session/*.wav\n")
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	log := zerolog.Nop()
	if *verbose {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
	}

	opts, err := buildOptions(*configPath, *workers, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	a := analysis.New(opts...)
	defer a.Close()

	failures := 0
	for _, path := range paths {
		if err := analyzeFile(a, log, path); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", path, err)
			failures++
		}
	}
	if failures > 0 {
		os.Exit(1)
	}
}

func buildOptions(configPath string, workers int, log zerolog.Logger) ([]analysis.Option, error) {
	var opts []analysis.Option
	if configPath != "" {
		cfg, err := analysis.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		opts = cfg.Options()
	}
	if workers > 0 {
		opts = append(opts, analysis.WithWorkers(workers))
	}
	opts = append(opts, analysis.WithLogger(log))
	return opts, nil
}

func analyzeFile(a *analysis.Analyzer, log zerolog.Logger, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	buf, err := wav.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to decode WAV: %w", err)
	}

	log.Info().
		Str("file", path).
		Int("sample_rate", buf.SampleRate()).
		Int("channels", buf.Channels()).
		Int("frames", buf.Frames()).
		Msg("decoded")

	summary, err := a.AnalyzeAll(buf.Mixdown(), float64(buf.SampleRate()))
	if err != nil {
		return err
	}

	printSummary(path, buf.Duration(), summary)
	return nil
}

func printSummary(path string, duration float64, s analysis.Summary) {
	header := color.New(color.FgCyan, color.Bold)
	_, _ = header.Println(path)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Duration\t%.2f s\n", duration)
	fmt.Fprintf(tw, "  Tempo\t%d BPM\n", s.BPM)
	fmt.Fprintf(tw, "  Key\t%s\n", s.Key)
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
		return
	}

	fmt.Println("  Chords")
	tw = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, ev := range s.Chords {
		fmt.Fprintf(tw, "    %7.2f s\t%s\n", ev.Time, ev.Label)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
	fmt.Println()
}
