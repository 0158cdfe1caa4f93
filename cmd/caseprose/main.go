// Command caseprose explains SQL CASE expressions in English.
//
// Usage:
//
//	caseprose [flags] [file.sql]
//	caseprose serve [-config file]
//
// With no file the query is read from standard input.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sqlc-dev/caseprose/ast"
	"github.com/sqlc-dev/caseprose/internal/cache"
	"github.com/sqlc-dev/caseprose/internal/config"
	"github.com/sqlc-dev/caseprose/internal/render"
	"github.com/sqlc-dev/caseprose/internal/server"
	"github.com/sqlc-dev/caseprose/internal/store"
	"github.com/sqlc-dev/caseprose/internal/translate"
	"github.com/sqlc-dev/caseprose/parser"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) > 0 && args[0] == "serve" {
		return serve(ctx, args[1:], stderr)
	}

	fs := flag.NewFlagSet("caseprose", flag.ContinueOnError)
	fs.SetOutput(stderr)
	formatFlag := fs.String("format", "", "Output format: text, markdown or json (default from config)")
	all := fs.Bool("all", false, "Explain every CASE expression, not just the first")
	dumpAST := fs.Bool("dump-ast", false, "Print the parsed syntax tree instead of an explanation")
	configPath := fs.String("config", "", "Path to a YAML config file")
	verbose := fs.Bool("v", false, "Log unsupported constructs")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	level := cfg.Log.SlogLevel()
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	sql, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading input: %v\n", err)
		return 1
	}

	if *dumpAST {
		return dump(ctx, sql, cfg, stdout, stderr)
	}

	if *formatFlag == "" {
		*formatFlag = cfg.Translate.Format
	}
	format, err := render.ParseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}

	opts := translate.Options{
		MaxDepth: cfg.Translate.MaxDepth,
		Indent:   cfg.Translate.Indent,
		Logger:   logger,
	}
	var reports []*translate.Report
	if *all {
		reports, err = translate.TranslateAllSQL(ctx, sql, opts)
	} else {
		var report *translate.Report
		report, err = translate.TranslateSQL(ctx, sql, opts)
		reports = []*translate.Report{report}
	}
	if err != nil {
		if errors.Is(err, translate.ErrNoConditionalExpression) {
			fmt.Fprintf(stderr, "No CASE expression found in input\n")
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}

	renderer, err := render.New()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	out, err := renderer.Render(reports, format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	stdout.Write(out)
	if len(out) > 0 && out[len(out)-1] != '\n' {
		fmt.Fprintln(stdout)
	}
	return 0
}

func readInput(name string, stdin io.Reader) (string, error) {
	if name == "" || name == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(name)
	return string(b), err
}

func dump(ctx context.Context, sql string, cfg *config.Config, stdout, stderr io.Writer) int {
	nodes, err := parser.ParseSource(ctx, strings.NewReader(sql), parser.WithMaxDepth(cfg.Translate.MaxDepth))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	for _, n := range nodes {
		switch n := n.(type) {
		case ast.Statement:
			fmt.Fprint(stdout, parser.Explain(n))
		case ast.Expression:
			fmt.Fprint(stdout, parser.ExplainExpression(n))
		}
	}
	return 0
}

func serve(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	var handler slog.Handler = slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})
	if cfg.Log.Format == "text" {
		handler = slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	renderer, err := render.New()
	if err != nil {
		logger.Error("renderer", "error", err)
		return 1
	}
	opts := []server.Option{server.WithLogger(logger)}

	if cfg.Redis.URL != "" {
		c, err := cache.Open(ctx, cfg.Redis.URL, cfg.Redis.TTL())
		if err != nil {
			logger.Error("cache unavailable", "error", err)
			return 1
		}
		defer c.Close()
		opts = append(opts, server.WithCache(c))
		logger.Info("cache enabled", "ttl", cfg.Redis.TTL())
	}

	if cfg.Database.URL != "" {
		s, err := store.Open(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("archive unavailable", "error", err)
			return 1
		}
		defer s.Close()
		if err := s.Migrate(ctx); err != nil {
			logger.Error("archive migration failed", "error", err)
			return 1
		}
		opts = append(opts, server.WithArchive(s))
		logger.Info("archive enabled")
	}

	if err := server.New(cfg, renderer, opts...).ListenAndServe(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		return 1
	}
	return 0
}
