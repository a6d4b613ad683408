// Command img2ascii prints an image as colored ASCII art.
//
//	img2ascii [options] path
//
// Run with --help for the full list of options.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

const (
	exitOK = iota
	exitFailure
	exitUsage
	exitDecode
	exitWrite
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, flagsErr.Message)
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	conv, preview, err := buildConverter(opts, logger)
	if err != nil {
		logger.Error("invalid option", "err", err)
		return exitUsage
	}
	if err := conv.Validate(); err != nil {
		logger.Error("invalid option", "err", err)
		return exitUsage
	}

	out := termenv.NewOutput(stdout)
	restore, err := termenv.EnableVirtualTerminalProcessing(out)
	if err != nil {
		logger.Debug("could not enable ANSI processing", "err", err)
	} else {
		defer restore()
	}
	tty := isTerminal(stdout)
	if tty {
		checkTerminal(out, stdout, conv, logger)
	}

	frame, err := conv.ConvertFile(ctx, opts.Args.Path)
	if err != nil {
		logger.Error("conversion failed", "path", opts.Args.Path, "err", err)
		return exitCode(err)
	}

	if opts.ClearScreen {
		if tty {
			out.ClearScreen()
		} else {
			logger.Debug("not clearing screen, stdout is not a terminal")
		}
	}

	if _, err := io.WriteString(stdout, frame.String()); err != nil {
		logger.Error("failed to print image", "err", err)
		return exitWrite
	}

	if opts.Output {
		if err := frame.WriteFile(opts.OutputFile); err != nil {
			logger.Error("failed to write output file", "path", opts.OutputFile, "err", err)
			return exitWrite
		}
		logger.Info("output written", "path", opts.OutputFile)
	}

	if opts.PNG != "" {
		if err := frame.SavePreview(opts.PNG, preview); err != nil {
			logger.Error("failed to write preview", "path", opts.PNG, "err", err)
			return exitWrite
		}
		logger.Info("preview written", "path", opts.PNG)
	}

	return exitOK
}

// buildConverter turns options into a converter and preview settings.
func buildConverter(opts *Options, logger *slog.Logger) (*img2ascii.Converter, img2ascii.PreviewOptions, error) {
	preview := img2ascii.DefaultPreviewOptions()

	interp, err := imageutil.ParseInterpolation(opts.Resample)
	if err != nil {
		return nil, preview, err
	}

	mode := img2ascii.TrueColor
	if opts.Colour256 {
		mode = img2ascii.Color256
	}

	if opts.PNG != "" {
		preview.Background, err = img2ascii.ParseHexColor(opts.PNGBackground)
		if err != nil {
			return nil, preview, err
		}
		if opts.Font != "" {
			preview.Face, err = img2ascii.LoadFontFace(opts.Font, opts.FontSize)
			if err != nil {
				return nil, preview, err
			}
		}
	}

	conv := img2ascii.NewConverter(
		img2ascii.WithWidth(opts.Width),
		img2ascii.WithAspectRatio(opts.AspectRatio),
		img2ascii.WithColorMode(mode),
		img2ascii.WithBackground(opts.Background),
		img2ascii.WithInterpolation(interp),
		img2ascii.WithAdjustments(imageutil.Adjustments{
			Brightness: opts.Brightness,
			Contrast:   opts.Contrast,
			Gamma:      opts.Gamma,
		}),
		img2ascii.WithWorkers(opts.Workers),
		img2ascii.WithCompression(opts.Compress),
		img2ascii.WithLogger(logger),
	)
	return conv, preview, nil
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, img2ascii.ErrDecode):
		return exitDecode
	case errors.Is(err, img2ascii.ErrWrite):
		return exitWrite
	case errors.Is(err, img2ascii.ErrInvalidWidth),
		errors.Is(err, img2ascii.ErrInvalidAspectRatio),
		errors.Is(err, img2ascii.ErrInvalidWorkers):
		return exitUsage
	default:
		return exitFailure
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// checkTerminal warns when the terminal is narrower than the output or
// cannot show the selected colors.
func checkTerminal(out *termenv.Output, stdout io.Writer, conv *img2ascii.Converter, logger *slog.Logger) {
	if f, ok := stdout.(*os.File); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && conv.Width > cols {
			logger.Info("output is wider than the terminal and will wrap",
				"width", conv.Width, "columns", cols)
		}
	}

	profile := out.ColorProfile()
	weak := profile == termenv.Ascii || profile == termenv.ANSI
	if conv.Mode == img2ascii.TrueColor && profile != termenv.TrueColor {
		weak = true
	}
	if weak {
		logger.Debug("terminal may not support the selected colors",
			"mode", conv.Mode, "profile", profileName(profile))
	}
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "256"
	case termenv.ANSI:
		return "16"
	default:
		return "none"
	}
}
