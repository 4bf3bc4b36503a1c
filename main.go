package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mcncl/jshape/internal/config"
	"github.com/mcncl/jshape/internal/errors"
	"github.com/mcncl/jshape/internal/formatter"
	"github.com/mcncl/jshape/internal/models"
	"github.com/mcncl/jshape/internal/parser"
	"github.com/mcncl/jshape/internal/shape"
)

// CLI defines the command-line interface
var CLI struct {
	Files       []string `arg:"" optional:"" name:"file" help:"Input JSON file(s). Use '-' or no argument to read from stdin. Multiple files are merged into one description."`
	MaxExamples int      `help:"Distinct example values shown per scalar before '...' (default 3)." short:"n"`
	Indent      int      `help:"Spaces per indentation level in the output (default 4)."`
	Repair      bool     `help:"Attempt to repair malformed JSON before giving up." short:"r"`
	Config      string   `help:"Path to a config file." short:"c" type:"path"`
	Debug       bool     `help:"Enable debug output." short:"d"`
	Version     bool     `help:"Show version information." short:"V"`
	Interactive bool     `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	kongParser := kong.Must(&CLI,
		kong.Name("jshape"),
		kong.Description("Describes the generalized shape of JSON documents"),
		kong.UsageOnError(),
	)

	// With no arguments on a terminal, fall into interactive mode so a bare
	// invocation does not sit silently waiting on stdin.
	if len(os.Args) == 1 && stdinIsTerminal() {
		CLI.Interactive = true
	}

	_, err := kongParser.Parse(os.Args[1:])
	if err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jshape version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	if err := run(&Context{Config: cfg}); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jshape --help\n")
		os.Exit(1)
	}
}

// loadConfig assembles the effective configuration: defaults, then an
// explicit or discovered config file, then CLI overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()

	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("failed to load config from '%s'", path), err)
		}
		cfg = loaded
	}

	cfg.ApplyOverrides(CLI.MaxExamples, CLI.Indent, CLI.Repair, CLI.Debug)
	return cfg, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	// 1. Parse every input document
	docs, err := parseInputs(ctx.Config)
	if err != nil {
		// Error is already wrapped by parseInputs
		return err
	}

	if ctx.Config.Debug {
		for _, doc := range docs {
			fmt.Fprintf(os.Stderr, "parsed %s\n", doc.Source)
		}
	}

	// 2. Lift each root value and merge into a single description
	var described shape.Shape
	for _, doc := range docs {
		lifted := shape.Lift(doc.Root, ctx.Config.MaxExamples)
		if described == nil {
			described = lifted
		} else {
			described = shape.Merge(described, lifted)
		}
	}

	// 3. Render and print
	text := formatter.NewFormatterWithIndent(ctx.Config.Indent).Render(described)
	if _, err := fmt.Println(text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// parseInputs reads and parses all requested documents: the positional
// files, or stdin when none were given (or '-' was).
func parseInputs(cfg *config.Config) ([]models.Document, error) {
	if len(CLI.Files) == 0 {
		doc, err := parseStdin(cfg)
		if err != nil {
			return nil, err
		}
		return []models.Document{doc}, nil
	}

	docs := make([]models.Document, 0, len(CLI.Files))
	for _, path := range CLI.Files {
		var doc models.Document
		var err error
		if path == "-" {
			doc, err = parseStdin(cfg)
		} else {
			doc, err = parser.ParseFile(path, cfg.Repair)
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// parseStdin reads JSON from standard input, interactively when requested
func parseStdin(cfg *config.Config) (models.Document, error) {
	if stdinIsTerminal() {
		if CLI.Interactive {
			return readInteractiveInput(cfg)
		}
		return models.Document{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return models.Document{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	doc, err := parseText(string(data), cfg)
	if err != nil {
		return models.Document{}, err
	}
	doc.Source = "stdin"
	return doc, nil
}

func parseText(text string, cfg *config.Config) (models.Document, error) {
	if cfg.Repair {
		return parser.ParseStringRepair(text)
	}
	return parser.ParseString(text)
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput(cfg *config.Config) (models.Document, error) {
	fmt.Fprintln(os.Stderr, "jshape Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Document{}, errors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if len(jsonData) == 0 {
		return models.Document{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr)
	doc, err := parseText(jsonData, cfg)
	if err != nil {
		return models.Document{}, err
	}
	doc.Source = "stdin"
	return doc, nil
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
