// package formatter renders recommendations and submission history to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/insure/internal/models"
	"github.com/desertthunder/insure/internal/shared"
)

// FormatCurrency renders a dollar amount with thousands separators, e.g. 500000 -> "$500,000".
func FormatCurrency(amount int) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.Itoa(amount)
	var buf strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			buf.WriteByte(',')
		}
		buf.WriteRune(d)
	}

	if negative {
		return "-$" + buf.String()
	}
	return "$" + buf.String()
}

// FormatTerm renders a policy term. A nil term means the policy has no fixed
// end date, e.g. whole life coverage.
func FormatTerm(term *int) string {
	if term == nil {
		return "Permanent"
	}
	if *term == 1 {
		return "1 Year"
	}
	return fmt.Sprintf("%d Years", *term)
}

// RecommendationToText renders a recommendation as plain text.
func RecommendationToText(rec *models.Recommendation) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Policy: %s\n", rec.Policy))
	buf.WriteString(fmt.Sprintf("Coverage: %s\n", FormatCurrency(rec.Coverage)))
	buf.WriteString(fmt.Sprintf("Term: %s\n", FormatTerm(rec.Term)))
	if rec.Explanation != "" {
		buf.WriteString(fmt.Sprintf("\n%s\n", rec.Explanation))
	}

	return buf.Bytes()
}

// RecommendationToMarkdown renders a recommendation as Markdown.
func RecommendationToMarkdown(rec *models.Recommendation) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", rec.Policy))
	buf.WriteString(fmt.Sprintf("**Coverage**: %s\n", FormatCurrency(rec.Coverage)))
	buf.WriteString(fmt.Sprintf("**Term**: %s\n", FormatTerm(rec.Term)))

	if rec.Explanation != "" {
		buf.WriteString(fmt.Sprintf("\n## Why\n\n%s\n", rec.Explanation))
	}

	return buf.Bytes()
}

// RecommendationToJSON generates a JSON representation of a recommendation.
func RecommendationToJSON(rec *models.Recommendation) ([]byte, error) {
	return shared.MarshalJSON(rec, true)
}

// HistoryToCSV converts submission history to CSV format with columns:
// ID, Sequence, Age, Income, Dependents, Risk, Policy, Coverage, Term, Created
func HistoryToCSV(submissions []*models.Submission) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Sequence", "Age", "Income", "Dependents", "Risk", "Policy", "Coverage", "Term", "Created"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, sub := range submissions {
		profile := sub.Profile()
		rec := sub.Recommendation()
		record := []string{
			sub.ID(),
			strconv.Itoa(sub.Sequence()),
			strconv.Itoa(profile.Age),
			strconv.Itoa(profile.Income),
			strconv.Itoa(profile.Dependents),
			profile.RiskTolerance.String(),
			rec.Policy,
			strconv.Itoa(rec.Coverage),
			FormatTerm(rec.Term),
			sub.CreatedAt().Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// HistoryToMarkdown converts submission history to a Markdown table.
func HistoryToMarkdown(submissions []*models.Submission) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Recommendation History\n\n")
	buf.WriteString(fmt.Sprintf("**Submissions**: %d\n\n", len(submissions)))

	buf.WriteString("| # | Age | Income | Dependents | Risk | Policy | Coverage | Term |\n")
	buf.WriteString("|---|-----|--------|------------|------|--------|----------|------|\n")
	for _, sub := range submissions {
		profile := sub.Profile()
		rec := sub.Recommendation()
		buf.WriteString(fmt.Sprintf("| %d | %d | %s | %d | %s | %s | %s | %s |\n",
			sub.Sequence(),
			profile.Age,
			FormatCurrency(profile.Income),
			profile.Dependents,
			profile.RiskTolerance,
			rec.Policy,
			FormatCurrency(rec.Coverage),
			FormatTerm(rec.Term),
		))
	}

	return buf.Bytes()
}

// HistoryToText converts submission history to plain text.
func HistoryToText(submissions []*models.Submission) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Submissions: %d\n\n", len(submissions)))
	for _, sub := range submissions {
		rec := sub.Recommendation()
		buf.WriteString(fmt.Sprintf("%d. %s - %s over %s\n",
			sub.Sequence(), rec.Policy, FormatCurrency(rec.Coverage), FormatTerm(rec.Term)))
	}

	return buf.Bytes()
}

// historyEntry is the JSON shape for one exported submission.
type historyEntry struct {
	ID         string `json:"id"`
	Sequence   int    `json:"sequence"`
	Age        int    `json:"age"`
	Income     int    `json:"income"`
	Dependents int    `json:"dependents"`
	Risk       string `json:"risk_tolerance"`
	Policy     string `json:"recommended_policy"`
	Coverage   int    `json:"recommended_coverage"`
	Term       *int   `json:"recommended_term"`
	CreatedAt  string `json:"created_at"`
}

// HistoryToJSON generates a JSON representation of submission history.
func HistoryToJSON(submissions []*models.Submission) ([]byte, error) {
	entries := make([]historyEntry, 0, len(submissions))
	for _, sub := range submissions {
		profile := sub.Profile()
		rec := sub.Recommendation()
		entries = append(entries, historyEntry{
			ID:         sub.ID(),
			Sequence:   sub.Sequence(),
			Age:        profile.Age,
			Income:     profile.Income,
			Dependents: profile.Dependents,
			Risk:       profile.RiskTolerance.String(),
			Policy:     rec.Policy,
			Coverage:   rec.Coverage,
			Term:       rec.Term,
			CreatedAt:  sub.CreatedAt().Format("2006-01-02 15:04:05"),
		})
	}
	return shared.MarshalJSON(entries, true)
}

// WriteHistoryExport writes submission history to a file in the requested
// format ("csv", "markdown", "text" or "json").
//
// Defaults to history.{ext} as the filename.
func WriteHistoryExport(submissions []*models.Submission, format, filepath string) (string, error) {
	var (
		data []byte
		ext  string
		err  error
	)

	switch format {
	case "csv":
		ext = "csv"
		data, err = HistoryToCSV(submissions)
	case "markdown", "md":
		ext = "md"
		data = HistoryToMarkdown(submissions)
	case "json":
		ext = "json"
		data, err = HistoryToJSON(submissions)
	case "text", "txt", "":
		ext = "txt"
		data = HistoryToText(submissions)
	default:
		return "", fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if filepath == "" {
		filepath = "history." + ext
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return filepath, nil
}
