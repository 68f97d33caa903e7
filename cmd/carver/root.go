package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/esimov/carver"
	"github.com/spf13/cobra"
)

// options holds the command line flags.
type options struct {
	source      string
	destination string
	newWidth    int
	newHeight   int
	percentage  bool
	square      bool
	scale       bool
	workers     int
	config      string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := options{
		source:      pipeName,
		destination: pipeName,
		workers:     runtime.NumCPU(),
	}

	cmd := &cobra.Command{
		Use:           "carver",
		Short:         "Content aware image shrinking",
		Long:          fmt.Sprintf(HelpBanner, Version),
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.config != "" {
				cfg, err := loadConfig(opts.config)
				if err != nil {
					return err
				}
				cfg.apply(&opts, cmd.Flags().Changed)
			}
			return run(cmd.Context(), opts, os.Stderr)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.source, "in", "i", opts.source, "source image, directory or URL (`-` for stdin)")
	f.StringVarP(&opts.destination, "out", "o", opts.destination, "destination image or directory (`-` for stdout)")
	f.IntVar(&opts.newWidth, "width", 0, "new width")
	f.IntVar(&opts.newHeight, "height", 0, "new height")
	f.BoolVar(&opts.percentage, "perc", false, "reduce the image by the width and height percentage")
	f.BoolVar(&opts.square, "square", false, "reduce the image to square dimensions")
	f.BoolVar(&opts.scale, "scale", false, "scale the image proportionally before carving")
	f.IntVar(&opts.workers, "conc", opts.workers, "number of files to process concurrently")
	f.StringVar(&opts.config, "config", "", "TOML file with default flag values")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	return cmd
}

// run validates the options and executes the resize operation.
func run(ctx context.Context, opts options, w io.Writer) error {
	level := log.InfoLevel
	if opts.verbose {
		level = log.DebugLevel
	}
	logger := newLogger(w, level)

	if opts.newWidth == 0 && opts.newHeight == 0 && !opts.square {
		return errors.New("please provide a width, height or percentage for image rescaling")
	}

	proc := &carver.Processor{
		NewWidth:   opts.newWidth,
		NewHeight:  opts.newHeight,
		Percentage: opts.percentage,
		Square:     opts.square,
		Scale:      opts.scale,
		Logger:     logger,
	}
	logger.Debug("starting", "in", opts.source, "out", opts.destination, "workers", opts.workers)

	return proc.Execute(ctx, &carver.Ops{
		Src:      opts.source,
		Dst:      opts.destination,
		PipeName: pipeName,
		Workers:  opts.workers,
	})
}

// newLogger creates a new logger with timestamp formatting.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
