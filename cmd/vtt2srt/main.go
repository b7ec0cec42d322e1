package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexflint/go-arg"

	"github.com/luismascotto/vtt2srt/internal/convert"
	"github.com/luismascotto/vtt2srt/internal/logging"
	"github.com/luismascotto/vtt2srt/internal/rules"
	"github.com/luismascotto/vtt2srt/internal/textfile"
)

type args struct {
	Pathname  string `arg:"positional,required" help:"a file or directory with files to be converted"`
	Recursive bool   `arg:"-r,--recursive" help:"walk path recursively"`
	Encoding  string `arg:"-e,--encoding" help:"encoding format for input and output files [default: utf-8]"`
	Mode      string `arg:"-m,--mode" help:"clean (collapse blank lines, renumber) or legacy [default: clean]"`
	Config    string `arg:"-c,--config" help:"TOML config file [default: ./vtt2srt.toml if present]"`
	Review    bool   `arg:"-p,--review" help:"preview each converted file and confirm before writing"`
	LogLevel  string `arg:"--log-level" help:"debug, info, warn or error"`
	LogFormat string `arg:"--log-format" help:"console or json"`
}

func (args) Description() string {
	return "Convert WebVTT (.vtt) subtitles to SubRip (.srt)."
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit status:
// 0 on success, 1 on a fatal error, 2 on bad usage or an invalid pathname.
func run(argv []string, stdout, stderr io.Writer) int {
	var a args
	parser, err := arg.NewParser(arg.Config{Program: "vtt2srt"}, &a)
	if err != nil {
		return printErr(stderr, err)
	}
	switch err := parser.Parse(argv); {
	case errors.Is(err, arg.ErrHelp):
		parser.WriteHelp(stdout)
		return 0
	case err != nil:
		parser.WriteUsage(stderr)
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	conf, err := rules.Load(a.Config)
	if err != nil {
		return printErr(stderr, err)
	}
	if err := applyArgs(&conf, a); err != nil {
		return printErr(stderr, err)
	}

	logger, err := logging.New(logging.Options{Level: conf.LogLevel, Format: conf.LogFormat, Writer: stderr})
	if err != nil {
		return printErr(stderr, err)
	}
	if conf.LoadedFromFile {
		logger.Debug("config loaded", logging.String("mode", conf.Mode), logging.String("encoding", conf.Encoding))
	}

	codec, err := textfile.LookupCodec(conf.Encoding)
	if err != nil {
		return printErr(stderr, fmt.Errorf("encoding: %w", err))
	}

	var reviewer convert.Reviewer
	if a.Review {
		reviewer = &tuiReviewer{width: conf.ReviewWidth, height: 32, previewCues: conf.PreviewCues}
	}

	converter := convert.New(convert.Options{
		Mode:      conf.ParsedMode(),
		Codec:     codec,
		Recursive: conf.Recursive,
		Fallback:  conf.WriteFallback,
	}, reviewer, logger)

	report, err := converter.Run(a.Pathname)
	if errors.Is(err, convert.ErrInvalidPath) {
		fmt.Fprintf(stderr, "pathname is not a file or directory: %s\n\n", a.Pathname)
		parser.WriteHelp(stderr)
		return 2
	}
	if len(report.Results) > 0 {
		fmt.Fprintln(stdout, renderSummary(report))
	}
	if report.Aborted {
		logger.Info("stopped by reviewer")
	}
	if err != nil {
		return printErr(stderr, err)
	}
	return 0
}

// applyArgs lets command line flags override config file values.
func applyArgs(conf *rules.Config, a args) error {
	if a.Recursive {
		conf.Recursive = true
	}
	if s := strings.TrimSpace(a.Encoding); s != "" {
		conf.Encoding = s
	}
	if a.Mode != "" {
		conf.Mode = strings.ToLower(strings.TrimSpace(a.Mode))
	}
	if a.LogLevel != "" {
		conf.LogLevel = strings.ToLower(strings.TrimSpace(a.LogLevel))
	}
	if a.LogFormat != "" {
		conf.LogFormat = strings.ToLower(strings.TrimSpace(a.LogFormat))
	}
	return conf.Validate()
}

func printErr(w io.Writer, err error) int {
	fmt.Fprintln(w, "Error:", err)
	return 1
}
