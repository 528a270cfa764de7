package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"google.golang.org/genai"

	"github.com/awray/docmap"
	"github.com/awray/docmap/gemini"
	"github.com/awray/docmap/index"
	docslog "github.com/awray/docmap/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read by update and insert when content is not passed as an
	// argument.
	Stdin io.Reader

	// Index overrides the service wired from --docs-root. Set before
	// calling Run() for end-to-end testing.
	Index docmap.IndexService

	// Asker overrides the Gemini asker for the ask command.
	Asker docmap.Asker
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docmap"),
		kong.Description("Navigate, search, validate, and edit AsciiDoc and Markdown documentation by section path."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docmap --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Root = cli.DocsRoot
	deps.Format = cli.Format

	logLevel := slog.LevelWarn
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	deps.Index = m.Index
	if deps.Index == nil {
		var svc docmap.IndexService = index.NewService(cli.DocsRoot)
		if cli.Verbose {
			svc = docslog.NewLoggingIndexService(svc, deps.Logger)
		}
		deps.Index = svc
	}

	if cmd == "ask" || cmd == "serve" {
		deps.Asker = m.Asker
		if deps.Asker == nil {
			asker, err := newGeminiAsker(ctx, cli.DocsRoot, cmd == "ask", stderr)
			if err != nil {
				return err
			}
			if asker != nil && cli.Verbose {
				deps.Asker = docslog.NewLoggingAsker(asker, deps.Logger)
			} else if asker != nil {
				deps.Asker = asker
			}
		}
	}

	return kongCtx.Run(deps)
}

// newGeminiAsker wires the Gemini asker from the environment. A missing
// API key is fatal for the ask command but merely disables the ask tool in
// serve mode.
func newGeminiAsker(ctx context.Context, root string, required bool, stderr io.Writer) (docmap.Asker, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		if !required {
			return nil, nil
		}
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	return gemini.NewAsker(client, root), nil
}
