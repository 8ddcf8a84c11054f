package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/insure/internal/formatter"
	"github.com/desertthunder/insure/internal/shared"
	"github.com/urfave/cli/v3"
)

// HistoryList prints or exports recorded recommendations, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	criteria := map[string]any{}
	if limit := cmd.Int("limit"); limit > 0 {
		criteria["limit"] = limit
	}
	if policy := cmd.String("policy"); policy != "" {
		criteria["policy"] = policy
	}

	submissions, err := r.history.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if output := cmd.String("output"); output != "" {
		path, err := formatter.WriteHistoryExport(submissions, cmd.String("format"), output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ History exported to %s\n", path)
	}

	switch format := cmd.String("format"); format {
	case "json":
		data, err := formatter.HistoryToJSON(submissions)
		if err != nil {
			return err
		}
		return r.writePlain("%s\n", data)
	case "markdown", "md":
		return r.writePlain("%s", formatter.HistoryToMarkdown(submissions))
	case "csv":
		data, err := formatter.HistoryToCSV(submissions)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	case "text", "txt", "":
		return r.writePlain("%s", formatter.HistoryToText(submissions))
	default:
		return fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, format)
	}
}

// HistoryClear deletes all recorded recommendations.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	if err := r.history.DeleteAll(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return r.writePlain("✓ History cleared\n")
}
