package main

import (
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Options is the command line configuration. Values come from, in order of
// precedence: flags, the --config INI file, IMG2ASCII_* environment
// variables, and the defaults below.
type Options struct {
	Width       int     `short:"w" long:"width" env:"IMG2ASCII_WIDTH" default:"100" description:"Character width of the output"`
	AspectRatio float64 `short:"a" long:"aspect_ratio" env:"IMG2ASCII_ASPECT_RATIO" default:"0.55" description:"Vertical correction for characters being taller than wide"`
	ClearScreen bool    `short:"s" long:"clearScreen" env:"IMG2ASCII_CLEAR_SCREEN" description:"Clear the terminal before printing"`
	Colour256   bool    `short:"c" long:"colour256" env:"IMG2ASCII_COLOUR256" description:"Use 256-colour mode instead of 24-bit colour"`
	Background  bool    `short:"b" long:"background" env:"IMG2ASCII_BACKGROUND" description:"Add background colours (neighbour average in 24-bit mode)"`
	Output      bool    `short:"o" long:"output" env:"IMG2ASCII_OUTPUT" description:"Also write the result, escape codes included, to --output-file"`
	OutputFile  string  `long:"output-file" env:"IMG2ASCII_OUTPUT_FILE" default:"ansi_image.txt" description:"File written by --output"`

	Resample   string  `long:"resample" env:"IMG2ASCII_RESAMPLE" default:"catmullrom" choice:"catmullrom" choice:"bilinear" choice:"nearest" choice:"lanczos" description:"Resampling kernel"`
	Brightness float64 `long:"brightness" env:"IMG2ASCII_BRIGHTNESS" description:"Brightness change in percent (-100 to 100)"`
	Contrast   float64 `long:"contrast" env:"IMG2ASCII_CONTRAST" description:"Contrast change in percent (-100 to 100)"`
	Gamma      float64 `long:"gamma" env:"IMG2ASCII_GAMMA" description:"Gamma correction, 0 leaves the image unchanged"`
	Compress   bool    `long:"compress" env:"IMG2ASCII_COMPRESS" description:"Leave out colour codes that repeat within a row"`
	Workers    int     `short:"j" long:"workers" env:"IMG2ASCII_WORKERS" description:"Rows encoded concurrently, 0 for one per CPU"`

	PNG           string  `long:"png" env:"IMG2ASCII_PNG" description:"Also write a PNG preview to this path"`
	Font          string  `long:"font" env:"IMG2ASCII_FONT" description:"TrueType font for the PNG preview"`
	FontSize      float64 `long:"font-size" env:"IMG2ASCII_FONT_SIZE" default:"12" description:"Point size of --font"`
	PNGBackground string  `long:"png-background" env:"IMG2ASCII_PNG_BACKGROUND" default:"#000000" description:"Preview background colour"`

	Verbose bool   `short:"v" long:"verbose" env:"IMG2ASCII_VERBOSE" description:"Log debug messages"`
	Config  string `long:"config" env:"IMG2ASCII_CONFIG" no-ini:"true" description:"INI file with option defaults"`

	Args struct {
		Path string `positional-arg-name:"path" required:"yes" description:"Input image"`
	} `positional-args:"yes"`
}

// parseOptions parses args into a fresh Options. When --config is given the
// INI file is read first and the flags parsed again on top of it.
func parseOptions(args []string) (*Options, error) {
	opts, parser := newParser()
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	if opts.Config == "" {
		return opts, nil
	}

	config := opts.Config
	opts, parser = newParser()
	if err := flags.NewIniParser(parser).ParseFile(config); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", config, err)
	}
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func newParser() (*Options, *flags.Parser) {
	opts := &Options{}
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "img2ascii"
	return opts, parser
}
