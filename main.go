package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"sqltok/pkg/diag"
	"sqltok/pkg/lexer"
	"sqltok/pkg/logging"
	"sqltok/pkg/ui"
	"sqltok/pkg/ui/base"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/peterh/liner"
	"golang.org/x/sync/errgroup"
)

type Configuration struct {
	Source    string
	TUI       bool
	JSON      bool
	Strict    bool
	LogPath   string
	LogLevel  string
	LogFormat string
	Files     []string
}

func main() {
	config := parseArguments()

	if err := initLogging(config); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	var err error
	switch {
	case config.TUI:
		err = runInspector()
	case config.Source != "":
		err = tokenizeOne("<arg>", []byte(config.Source), config, os.Stdout)
	case len(config.Files) > 0:
		err = tokenizeFiles(config)
	default:
		err = runRepl()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseArguments processes command-line flags
func parseArguments() Configuration {
	var config Configuration

	flag.StringVar(&config.Source, "e", "", "Tokenize the given source string and exit")
	flag.BoolVar(&config.TUI, "tui", false, "Start the interactive token inspector")
	flag.BoolVar(&config.JSON, "json", false, "Emit tokens as JSON lines")
	flag.BoolVar(&config.Strict, "strict", false, "Exit non-zero if any input contains error tokens")
	flag.StringVar(&config.LogPath, "log", "", "Log file path (default stdout)")
	flag.StringVar(&config.LogLevel, "level", "INFO", "Log level: DEBUG, INFO, WARN, ERROR")
	flag.StringVar(&config.LogFormat, "logfmt", "text", "Log format: text or json")
	flag.Parse()

	config.Files = flag.Args()
	return config
}

func initLogging(config Configuration) error {
	if config.LogPath == "" && config.LogLevel == "INFO" && config.LogFormat == "text" {
		logging.InitDefault()
		return nil
	}
	return logging.Init(logging.Config{
		Level:      logging.LogLevel(strings.ToUpper(config.LogLevel)),
		OutputPath: config.LogPath,
		Format:     config.LogFormat,
	})
}

// tokenizeFiles scans every file argument concurrently and prints the
// results in argument order.
func tokenizeFiles(config Configuration) error {
	logger := logging.WithComponent("batch")
	logger.Info("tokenizing files", "count", len(config.Files))

	outputs := make([]strings.Builder, len(config.Files))
	errorTokens := make([]int, len(config.Files))

	var g errgroup.Group
	for i, path := range config.Files {
		i, path := i, path
		g.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			if err := tokenizeOne(path, src, config, &outputs[i]); err != nil {
				return err
			}
			errorTokens[i] = len(diag.Collect(src))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	total := 0
	for i := range outputs {
		io.WriteString(os.Stdout, outputs[i].String())
		total += errorTokens[i]
	}

	if config.Strict && total > 0 {
		return fmt.Errorf("%d error token(s) across %d file(s)", total, len(config.Files))
	}
	return nil
}

type jsonToken struct {
	Type string `json:"type"`
	Pos  int    `json:"pos"`
	Text string `json:"text"`
}

// tokenizeOne scans one named input and writes its token listing and
// diagnostics to w.
func tokenizeOne(name string, src []byte, config Configuration, w io.Writer) error {
	logger := logging.WithInput(name)

	tokens := lexer.Tokenize(src)
	diags := diag.Collect(src)
	logger.Debug("tokenized", "tokens", len(tokens), "errors", len(diags))

	if config.JSON {
		enc := json.NewEncoder(w)
		for _, tok := range tokens {
			if err := enc.Encode(jsonToken{
				Type: tok.Type.String(),
				Pos:  tok.Pos,
				Text: string(tok.Text),
			}); err != nil {
				return err
			}
		}
		return nil
	}

	fmt.Fprintf(w, "== %s: %d token(s), %d error(s)\n", name, len(tokens), len(diags))
	for _, tok := range tokens {
		fmt.Fprintf(w, "%s %s %q\n",
			base.PadString(fmt.Sprintf("%d", tok.Pos), 6),
			base.PadString(tok.Type.String(), 34),
			tok.Text)
	}
	for _, d := range diags {
		fmt.Fprintf(w, "%s\n", d.Render(src))
	}
	return nil
}

// runRepl reads lines, tokenizes each and prints the highlighted
// source, the token listing and any diagnostics.
func runRepl() error {
	logger := logging.WithComponent("repl")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	historyPath := replHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}

	highlighter := ui.NewHighlighter()
	fmt.Println("sqltok — type a query, empty line or ctrl+d to exit")

	for {
		line, err := ln.Prompt("sqltok> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		ln.AppendHistory(line)

		src := []byte(line)
		fmt.Println(highlighter.Highlight(line))
		for _, tok := range lexer.Tokenize(src) {
			if !tok.IsSignificant() {
				continue
			}
			fmt.Printf("  %s %q\n", base.PadString(tok.Type.String(), 34), tok.Text)
		}
		for _, d := range diag.Collect(src) {
			fmt.Println(d.Render(src))
		}
	}

	if historyPath != "" {
		if f, err := os.Create(historyPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		} else {
			logger.Warn("could not save history", "path", historyPath, "error", err)
		}
	}
	return nil
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sqltok_history")
}

func runInspector() error {
	logging.WithComponent("tui").Info("starting inspector")

	_, err := tea.NewProgram(ui.NewModel(), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("inspector failed: %w", err)
	}
	return nil
}
