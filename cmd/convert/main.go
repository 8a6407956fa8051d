// Command convert turns a statement PDF into an XLSX workbook from the
// command line, categorizing transactions with the built-in starter rules.
//
// Usage: convert <statement.pdf> [output.xlsx]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bcakit/mutasi2xlsx/internal/domain/category"
	"github.com/bcakit/mutasi2xlsx/internal/domain/export"
	"github.com/bcakit/mutasi2xlsx/internal/domain/statement/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintln(os.Stderr, "usage: convert <statement.pdf> [output.xlsx]")
		os.Exit(2)
	}

	input := os.Args[1]
	output := strings.TrimSuffix(input, ".pdf") + ".xlsx"
	if len(os.Args) == 3 {
		output = os.Args[2]
	}

	if err := run(logger, input, output); err != nil {
		logger.Error("conversion failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, input, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	svc := service.NewStatementService(logger)
	result, err := svc.ProcessPDF(context.Background(), data, category.StarterRules())
	if err != nil {
		return err
	}

	payload, err := export.WriteXLSX(result.Records, result.Categorized)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, payload, 0o644); err != nil {
		return err
	}

	logger.Info("statement converted",
		slog.String("output", output),
		slog.Int("transactions", len(result.Records)),
	)
	return nil
}
