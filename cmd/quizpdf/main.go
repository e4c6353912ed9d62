package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"pkt.systems/quizpdf"
	"pkt.systems/quizpdf/internal/logging"
	"pkt.systems/quizpdf/pdf"
	"pkt.systems/version"
)

const (
	defaultThemeName    = "default"
	defaultWidth        = 80
	defaultImageTimeout = 30 * time.Second
)

func init() {
	version.SetDefaultModule("pkt.systems/quizpdf")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	outPath        string
	preview        bool
	themeName      string
	width          int
	osc8           string
	listThemes     bool
	boring         bool
	showIDs        bool
	noAnswers      bool
	title          string
	pageSize       string
	margin         float64
	fontSize       float64
	regularFont    string
	boldFont       string
	italicFont     string
	boldItalicFont string
	imageTimeout   time.Duration
	logLevel       string
	logFormat      string
	showVersion    bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	pdfDefaults := pdf.DefaultConfig()
	flags := pflag.NewFlagSet("quizpdf", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.outPath, "output", "o", "", "Output file (\"-\" for stdout); required for PDF output")
	flags.BoolVar(&opts.preview, "preview", false, "Print an ANSI preview instead of a PDF")
	flags.StringVarP(&opts.themeName, "theme", "t", defaultThemeName, "Preview theme name")
	flags.IntVarP(&opts.width, "width", "w", 0, "Preview width override (0 uses terminal width if available)")
	flags.StringVarP(&opts.osc8, "osc8", "8", "auto", "OSC8 hyperlinks in preview: auto|on|off")
	flags.BoolVar(&opts.listThemes, "list-themes", false, "List available themes")
	flags.BoolVarP(&opts.boring, "boring", "b", false, "Preview without ANSI styling")
	flags.BoolVar(&opts.showIDs, "show-ids", false, "Show question IDs in preview")
	flags.BoolVar(&opts.noAnswers, "no-answers", false, "Leave out the answer key")
	flags.StringVar(&opts.title, "title", "", "Override the quiz title")
	flags.StringVar(&opts.pageSize, "page-size", pdfDefaults.PageSize, "PDF page size")
	flags.Float64Var(&opts.margin, "margin", pdfDefaults.Margin, "Page margin in points")
	flags.Float64Var(&opts.fontSize, "font-size", pdfDefaults.QuestionSize, "Question font size in points")
	flags.StringVar(&opts.regularFont, "regular-font", "", "TTF path for regular font")
	flags.StringVar(&opts.boldFont, "bold-font", "", "TTF path for bold font")
	flags.StringVar(&opts.italicFont, "italic-font", "", "TTF path for italic font")
	flags.StringVar(&opts.boldItalicFont, "bold-italic-font", "", "TTF path for bold-italic font")
	flags.DurationVar(&opts.imageTimeout, "image-timeout", defaultImageTimeout, "Timeout per remote image or quiz fetch")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level: trace|debug|info|warn|error")
	flags.StringVar(&opts.logFormat, "log-format", "console", "Log format: console|json|pretty")
	flags.BoolVar(&opts.showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: quizpdf [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nInputs are quiz files, file:// or http(s) URLs. Several inputs are merged.")
		fmt.Fprintln(stderr, "If no input is provided, the quiz is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}
	if opts.listThemes {
		printThemes(stdout)
		return 0
	}

	log, err := logging.New("quizpdf", logging.Config{Level: opts.logLevel, Format: opts.logFormat})
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}

	theme, ok := quizpdf.ThemeByName(opts.themeName)
	if !ok {
		fmt.Fprintf(stderr, "unknown theme %q\n\n", opts.themeName)
		printThemes(stderr)
		return 2
	}
	if !opts.preview && strings.TrimSpace(opts.outPath) == "" {
		fmt.Fprintln(stderr, "PDF output requires -o/--output; use --preview for terminal output")
		return 2
	}

	client := &http.Client{Timeout: opts.imageTimeout}
	quiz, baseDir, err := loadInputs(ctx, flags.Args(), stdin, client)
	if err != nil {
		fmt.Fprintf(stderr, "load quiz: %v\n", err)
		return 1
	}
	if opts.title != "" {
		quiz.Title = opts.title
	}
	answers := quiz.AnswersIncluded() && !opts.noAnswers
	log.Debug("quiz loaded", "title", quiz.Title, "categories", len(quiz.Categories), "questions", quiz.QuestionCount())

	writer, closeOut, err := resolveOutput(opts.outPath, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "open output: %v\n", err)
		return 1
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	if opts.preview {
		osc8, err := resolveOSC8(opts.osc8)
		if err != nil {
			fmt.Fprintf(stderr, "invalid --osc8 %q: %v\n", opts.osc8, err)
			return 2
		}
		if opts.boring {
			theme, _ = quizpdf.ThemeByName("boring")
		}
		if err := quizpdf.Preview(quizpdf.PreviewRequest{
			Quiz:           quiz,
			Writer:         writer,
			Width:          resolveWidth(opts.width, writer),
			Theme:          theme,
			IncludeAnswers: answers,
			Options:        []quizpdf.PreviewOption{quizpdf.WithOSC8(osc8), quizpdf.WithQuestionIDs(opts.showIDs)},
		}); err != nil {
			fmt.Fprintf(stderr, "preview: %v\n", err)
			return 1
		}
		return 0
	}

	if isTerminal(writer) {
		fmt.Fprintln(stderr, "refusing to write PDF to terminal; use -o/--output")
		return 2
	}
	cfg, err := pdfConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "pdf config: %v\n", err)
		return 2
	}
	if err := pdf.Render(ctx, pdf.RenderRequest{
		Quiz:           quiz,
		Writer:         writer,
		Config:         cfg,
		IncludeAnswers: answers,
		Images:         pdf.DefaultImageLoader{Client: client, BaseDir: baseDir},
		Logger:         log,
	}); err != nil {
		fmt.Fprintf(stderr, "render pdf: %v\n", err)
		return 1
	}
	log.Info("pdf written", "output", opts.outPath, "questions", quiz.QuestionCount(), "answers", answers)
	return 0
}

func pdfConfig(opts options) (pdf.Config, error) {
	cfg := pdf.Config{
		PageSize:     opts.pageSize,
		Margin:       opts.margin,
		QuestionSize: opts.fontSize,
	}
	reg, bold, italic := strings.TrimSpace(opts.regularFont), strings.TrimSpace(opts.boldFont), strings.TrimSpace(opts.italicFont)
	if reg == "" && bold == "" && italic == "" {
		return cfg, nil
	}
	if reg == "" || bold == "" || italic == "" {
		return cfg, fmt.Errorf("regular, bold, and italic fonts must all be provided")
	}
	fonts := []struct {
		name string
		path string
		dst  *string
	}{
		{"regular font", reg, &cfg.RegularFont},
		{"bold font", bold, &cfg.BoldFont},
		{"italic font", italic, &cfg.ItalicFont},
		{"bold-italic font", strings.TrimSpace(opts.boldItalicFont), &cfg.BoldItalicFont},
	}
	for _, f := range fonts {
		if f.path == "" {
			continue
		}
		path := normalizePath(f.path)
		if err := ensureFont(path); err != nil {
			return cfg, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = path
	}
	return cfg, nil
}

func printThemes(w io.Writer) {
	for _, name := range quizpdf.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
}

// loadInputs loads, merges and revalidates every input. The returned
// directory is where relative image paths resolve: the first local quiz
// file's directory, or the working directory.
func loadInputs(ctx context.Context, args []string, stdin io.Reader, client *http.Client) (quizpdf.Quiz, string, error) {
	baseDir := ""
	if len(args) == 0 {
		args = []string{"-"}
	}
	quizzes := make([]quizpdf.Quiz, 0, len(args))
	for _, raw := range args {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return quizpdf.Quiz{}, "", fmt.Errorf("empty input argument")
		}
		quiz, path, err := loadInput(ctx, raw, stdin, client)
		if err != nil {
			return quizpdf.Quiz{}, "", fmt.Errorf("%s: %w", raw, err)
		}
		if baseDir == "" && path != "" {
			baseDir = filepath.Dir(path)
		}
		quizzes = append(quizzes, quiz)
	}
	merged := quizpdf.Merge(quizzes...)
	if err := merged.Validate(); err != nil {
		return quizpdf.Quiz{}, "", fmt.Errorf("merged quiz: %w", err)
	}
	return merged, baseDir, nil
}

func loadInput(ctx context.Context, raw string, stdin io.Reader, client *http.Client) (quizpdf.Quiz, string, error) {
	if raw == "-" {
		quiz, err := quizpdf.LoadQuiz(stdin)
		return quiz, "", err
	}
	path := raw
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			quiz, err := quizpdf.FetchQuiz(ctx, quizpdf.FetchRequest{URL: raw, Client: client})
			return quiz, "", err
		case "file":
			path = u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
		}
	}
	clean := normalizePath(path)
	f, err := os.Open(clean)
	if err != nil {
		return quizpdf.Quiz{}, "", err
	}
	defer f.Close()
	quiz, err := quizpdf.LoadQuiz(f)
	return quiz, clean, err
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "-" {
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

func resolveWidth(width int, w io.Writer) int {
	if width > 0 {
		return width
	}
	return terminalWidth(w, defaultWidth)
}

func terminalWidth(w io.Writer, fallback int) int {
	if f, ok := w.(*os.File); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
				return cols
			}
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if cols, err := strconv.Atoi(value); err == nil && cols > 0 {
			return cols
		}
	}
	return fallback
}

func resolveOSC8(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return quizpdf.DetectOSC8Support(), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
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

func ensureFont(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory")
	}
	if !strings.HasSuffix(strings.ToLower(info.Name()), ".ttf") {
		return fmt.Errorf("expected .ttf font file")
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
