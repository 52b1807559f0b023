package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"pkt.systems/helptext"
	"pkt.systems/helptext/internal/config"
	"pkt.systems/version"
)

const (
	formatAuto     = "auto"
	formatRST      = "rst"
	formatXHTML    = "xhtml"
	formatMarkdown = "markdown"
)

func init() {
	version.SetDefaultModule("pkt.systems/helptext")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath  string
	format      string
	themeName   string
	width       int
	osc8        string
	links       bool
	listLinks   bool
	listTargets bool
	listThemes  bool
	boring      bool
	logLevel    string
	dumpConfig  bool
	outPath     string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	flags := pflag.NewFlagSet("helptext", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file (default: XDG config dir helptext/config.yaml)")
	flags.StringVarP(&opts.format, "format", "f", formatAuto, "Input format: auto|rst|xhtml|markdown")
	flags.StringVarP(&opts.themeName, "theme", "t", "", "Theme name")
	flags.IntVarP(&opts.width, "width", "w", 0, "Wrap width override (0 uses configured or terminal width)")
	flags.StringVarP(&opts.osc8, "osc8", "8", "", "OSC8 hyperlinks: auto|on|off")
	flags.BoolVarP(&opts.links, "links", "l", false, "Append a numbered list of link targets")
	flags.BoolVar(&opts.listLinks, "list-links", false, "Print link regions instead of the document")
	flags.BoolVar(&opts.listTargets, "list-targets", false, "Print section targets instead of the document")
	flags.BoolVar(&opts.listThemes, "list-themes", false, "List available themes")
	flags.BoolVarP(&opts.boring, "boring", "b", false, "Generate non-ANSI output")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: none|normal|debug")
	flags.BoolVar(&opts.dumpConfig, "dump-config", false, "Print the effective configuration and exit")
	flags.StringVarP(&opts.outPath, "output", "o", "", "Output file instead of stdout")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: helptext [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nIf no input is provided, the document is read from stdin.")
		fmt.Fprintln(stderr, "Docutils XML (.xml), XHTML (.html, .xhtml) and Markdown (.md) are recognized.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.listThemes {
		printThemes(stdout)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 2
	}
	applyFlags(flags, &opts, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}
	if opts.dumpConfig {
		data, err := config.Dump(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		_, _ = stdout.Write(data)
		return 0
	}

	log := cfg.Log.Prepare(zapcore.AddSync(stderr))
	defer func() { _ = log.Sync() }()

	inputs, err := readInputs(flags.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return 1
	}

	writer, closeOut, err := resolveOutput(opts.outPath, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "open output: %v\n", err)
		return 1
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	theme, _ := helptext.ThemeByName(cfg.Theme)
	if opts.boring {
		theme = helptext.BoringTheme()
	}
	osc8, err := resolveOSC8(cfg.OSC8)
	if err != nil {
		fmt.Fprintf(stderr, "invalid osc8 %q: %v\n", cfg.OSC8, err)
		return 2
	}
	width := cfg.Width
	if width == 0 {
		width = terminalWidth(helptext.DefaultWidth)
	}

	for _, in := range inputs {
		format := opts.format
		if format == formatAuto {
			format = detectFormat(in.name, in.data)
		}
		log.Debug("rendering input", zap.String("input", in.name), zap.String("format", format), zap.Int("width", width))
		doc, err := render(format, in.data, helptext.WithWidth(width), helptext.WithLogger(log))
		if err != nil {
			fmt.Fprintf(stderr, "render %s: %v\n", in.name, err)
			return 1
		}
		switch {
		case opts.listLinks:
			err = printLinks(writer, doc)
		case opts.listTargets:
			err = printTargets(writer, doc)
		default:
			err = helptext.WriteANSI(writer, doc,
				helptext.WithTheme(theme),
				helptext.WithProfile(colorProfile(writer, opts.boring)),
				helptext.WithOSC8(osc8 && !opts.boring),
				helptext.WithLinkFooter(cfg.LinkFooter),
				helptext.WithFooterWidth(width),
				helptext.WithWriteLogger(log))
		}
		if err != nil {
			fmt.Fprintf(stderr, "write %s: %v\n", in.name, err)
			return 1
		}
	}
	return 0
}

// applyFlags copies flags given on the command line over cfg.
func applyFlags(flags *pflag.FlagSet, opts *options, cfg *config.Config) {
	if flags.Changed("width") && opts.width > 0 {
		cfg.Width = opts.width
	}
	if flags.Changed("theme") {
		cfg.Theme = opts.themeName
	}
	if flags.Changed("osc8") {
		cfg.OSC8 = strings.ToLower(strings.TrimSpace(opts.osc8))
	}
	if flags.Changed("links") {
		cfg.LinkFooter = opts.links
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
}

func render(format string, data []byte, opts ...helptext.RenderOption) (*helptext.Document, error) {
	switch format {
	case formatRST:
		root, err := helptext.ParseRSTXML(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return helptext.RenderRST(root, opts...)
	case formatXHTML:
		root, err := helptext.ParseXHTML(string(data))
		if err != nil {
			return nil, err
		}
		return helptext.RenderXHTML(root, opts...), nil
	case formatMarkdown:
		doc, _, err := helptext.RenderMarkdown(data, opts...)
		return doc, err
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

// detectFormat picks the input format from the file extension, falling
// back to the leading markup of the content.
func detectFormat(name string, data []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xml":
		return formatRST
	case ".html", ".htm", ".xhtml":
		return formatXHTML
	case ".md", ".markdown":
		return formatMarkdown
	}
	head := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(head, []byte("<?xml")), bytes.HasPrefix(head, []byte("<!DOCTYPE document")), bytes.HasPrefix(head, []byte("<document")):
		return formatRST
	case bytes.HasPrefix(head, []byte("<")):
		return formatXHTML
	default:
		return formatMarkdown
	}
}

func printLinks(w io.Writer, doc *helptext.Document) error {
	for _, l := range doc.Links {
		if _, err := fmt.Fprintf(w, "%d\t%d\t%s\n", l.Offset, l.Length, l.URI); err != nil {
			return err
		}
	}
	return nil
}

func printTargets(w io.Writer, doc *helptext.Document) error {
	names := make([]string, 0, len(doc.Targets))
	for name := range doc.Targets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		oi, oj := doc.Targets[names[i]], doc.Targets[names[j]]
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", doc.Targets[name], name); err != nil {
			return err
		}
	}
	return nil
}

func printThemes(w io.Writer) {
	for _, name := range helptext.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
}

func colorProfile(w io.Writer, boring bool) termenv.Profile {
	if boring {
		return termenv.Ascii
	}
	if f, ok := w.(*os.File); ok {
		return termenv.NewOutput(f).EnvColorProfile()
	}
	return termenv.TrueColor
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func resolveOSC8(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return helptext.DetectOSC8Support(), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}

type input struct {
	name string
	data []byte
}

type inputSource struct {
	name string
	open func() (io.Reader, io.Closer, error)
}

func readInputs(args []string, stdin io.Reader) ([]input, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		return []input{{name: "-", data: data}}, nil
	}
	inputs := make([]input, 0, len(args))
	for _, raw := range args {
		if strings.TrimSpace(raw) == "-" {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, input{name: "-", data: data})
			continue
		}
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, err
		}
		data, err := src.read()
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input{name: src.name, data: data})
	}
	return inputs, nil
}

func (s inputSource) read() ([]byte, error) {
	reader, closer, err := s.open()
	if err != nil {
		return nil, err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	return io.ReadAll(reader)
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{name: u.Path, open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{name: path, open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{name: raw, open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	clean := normalizePath(path)
	f, err := os.Open(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}
