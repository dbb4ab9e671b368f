package main

// Exercise the analysis pipeline against a local assignment file without
// going through the HTTP server:
//   go run ./cmd/prompttest -file assignment.pdf
//   go run ./cmd/prompttest -file assignment.txt -dry-run

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"assigncheck-backend/internal/analyses"
	"assigncheck-backend/internal/extract"
	"assigncheck-backend/internal/llm/gemini"
	"assigncheck-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	filePath := flag.String("file", "", "Path to assignment file (txt, pdf, or docx)")
	model := flag.String("model", cfg.LLMModel, "Gemini model name")
	dryRun := flag.Bool("dry-run", false, "Print the built prompt instead of calling the model")
	outPath := flag.String("out", "", "Path to write the Markdown result (optional)")
	flag.Parse()

	if strings.TrimSpace(*filePath) == "" {
		exitErr("file path is required")
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		exitErr(fmt.Sprintf("read file: %v", err))
	}
	text := extract.FromBytes(data, filepath.Base(*filePath))

	if *dryRun {
		fmt.Println(analyses.BuildPrompt(text))
		return
	}

	ctx := context.Background()
	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, *model)
	if err != nil {
		exitErr(fmt.Sprintf("gemini client: %v", err))
	}

	outcome, err := analyses.NewService(client).Analyze(ctx, text)
	if err != nil {
		exitErr(fmt.Sprintf("analyze: %v", err))
	}
	if outcome.Degraded {
		fmt.Fprintf(os.Stderr, "warning: degraded result: %s\n", outcome.Reason)
	}

	if strings.TrimSpace(*outPath) != "" {
		if err := os.WriteFile(*outPath, []byte(outcome.Text), 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
		fmt.Printf("OK: wrote %s\n", *outPath)
		return
	}
	fmt.Println(outcome.Text)
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
