// Command framelearn fits a configured chain of steps on a training table
// and writes either its predictions or its transformed output.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/wdm0006/framelearn/pkg/frame"
	"github.com/wdm0006/framelearn/pkg/io/csvio"
	"github.com/wdm0006/framelearn/pkg/io/jsonlio"
	"github.com/wdm0006/framelearn/pkg/io/parquetio"
	"github.com/wdm0006/framelearn/pkg/logger"
	"github.com/wdm0006/framelearn/pkg/profile"
)

var (
	version = "0.1.0-dev"
)

var errUsage = errors.New("usage")

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	configPath := flag.String("config", "", "Path to run config (JSON, YAML or TOML)")
	logLevel := flag.String("log-level", "", "Override the configured log level")
	flag.Parse()

	if *showVersion {
		fmt.Println("framelearn", version)
		return
	}
	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "no config provided; nothing to do. try --config <file> or --version")
		os.Exit(2)
	}
	if err := run(*configPath, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(configPath, logLevel string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := logger.Init(cfg.Log); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	chain, err := buildChain(cfg.Steps)
	if err != nil {
		return err
	}

	train, err := readInput(cfg.Train)
	if err != nil {
		return err
	}
	x, y, err := splitTarget(train, cfg.Target)
	if err != nil {
		return err
	}
	log.Info("loaded training data",
		zap.String("path", cfg.Train.Path),
		zap.Int("rows", x.Rows()),
		zap.Strings("features", x.Names()),
	)
	if ce := log.Check(zap.DebugLevel, "training profile"); ce != nil {
		ce.Write(zap.Array("columns", profile.Describe(x, 3)))
	}

	start := time.Now()
	if err := chain.Fit(x, y); err != nil {
		return fmt.Errorf("fit: %w", err)
	}
	log.Info("fit chain", zap.Int("steps", chain.Len()), zap.Duration("elapsed", time.Since(start)))

	in := x
	if cfg.Predict != nil {
		f, err := readInput(*cfg.Predict)
		if err != nil {
			return err
		}
		if in, _, err = splitTarget(f, cfg.Target); err != nil {
			return err
		}
	}

	var out *frame.Frame
	if predicts(cfg.Steps[len(cfg.Steps)-1]) {
		pred, err := chain.Predict(in)
		if err != nil {
			return fmt.Errorf("predict: %w", err)
		}
		out = pred.ToFrame()
	} else if out, err = chain.Transform(in); err != nil {
		return fmt.Errorf("transform: %w", err)
	}

	if err := writeOutput(cfg.Output, out); err != nil {
		return err
	}
	log.Info("wrote output",
		zap.String("path", cfg.Output.Path),
		zap.Int("rows", out.Rows()),
		zap.Strings("columns", out.Names()),
	)
	return nil
}

// splitTarget removes the target column from f and returns it as a series.
// An absent target yields a nil series.
func splitTarget(f *frame.Frame, target string) (*frame.Frame, *frame.Series, error) {
	if target == "" {
		return f, nil, nil
	}
	col, ok := f.ColumnByName(target)
	if !ok {
		return f, nil, nil
	}
	var rest []string
	for _, n := range f.Names() {
		if n != target {
			rest = append(rest, n)
		}
	}
	x, err := f.Select(rest...)
	if err != nil {
		return nil, nil, err
	}
	y, err := frame.SeriesOf(col, f.Index())
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

func readInput(in InputConfig) (*frame.Frame, error) {
	switch fileType(in.Type, in.Path) {
	case "csv":
		opt := csvio.ReaderOptions{HasHeader: true, SampleRows: 100, IndexColumn: in.IndexColumn}
		if in.HasHeader != nil {
			opt.HasHeader = *in.HasHeader
		}
		if in.Delimiter != "" {
			opt.Delimiter = rune(in.Delimiter[0])
		}
		return csvio.ReadFile(in.Path, opt)
	case "jsonl":
		return jsonlio.ReadFile(in.Path, jsonlio.ReaderOptions{SampleRows: 100, IndexColumn: in.IndexColumn})
	case "parquet":
		return parquetio.ReadFile(in.Path, parquetio.ReaderOptions{IndexColumn: in.IndexColumn})
	default:
		return nil, fmt.Errorf("%w: unsupported input type %q", errUsage, in.Type)
	}
}

func writeOutput(out OutputConfig, f *frame.Frame) error {
	switch fileType(out.Type, out.Path) {
	case "csv":
		opt := csvio.WriterOptions{IndexColumn: out.IndexColumn}
		if out.Delimiter != "" {
			opt.Delimiter = rune(out.Delimiter[0])
		}
		return csvio.WriteAll(out.Path, f, opt)
	case "jsonl":
		return jsonlio.WriteAll(out.Path, f, jsonlio.WriterOptions{IndexColumn: out.IndexColumn})
	case "parquet":
		return parquetio.WriteAll(out.Path, f, parquetio.WriterOptions{IndexColumn: out.IndexColumn})
	default:
		return fmt.Errorf("%w: unsupported output type %q", errUsage, out.Type)
	}
}
