package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/insure/internal/models"
	th "github.com/desertthunder/insure/internal/testing"
)

func testSubmissions(t *testing.T) []*models.Submission {
	t.Helper()

	term := 20
	first := models.NewSubmission(1,
		models.ProfileInput{Age: 30, Income: 80000, Dependents: 2, RiskTolerance: models.RiskMedium},
		models.Recommendation{Policy: "Term Life", Coverage: 500000, Term: &term, Explanation: "Young family."},
	)
	first.SetID("sub1")
	first.SetCreatedAt(time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC))

	second := models.NewSubmission(2,
		models.ProfileInput{Age: 55, Income: 150000, Dependents: 0, RiskTolerance: models.RiskLow},
		models.Recommendation{Policy: "Whole Life", Coverage: 250000, Term: nil, Explanation: "Estate planning."},
	)
	second.SetID("sub2")
	second.SetCreatedAt(time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC))

	return []*models.Submission{first, second}
}

func TestFormatting(t *testing.T) {
	t.Run("FormatCurrency", func(t *testing.T) {
		cases := []struct {
			amount int
			want   string
		}{
			{0, "$0"},
			{999, "$999"},
			{1000, "$1,000"},
			{500000, "$500,000"},
			{1250000, "$1,250,000"},
			{-45000, "-$45,000"},
		}

		for _, c := range cases {
			if got := FormatCurrency(c.amount); got != c.want {
				t.Errorf("FormatCurrency(%d) = %q, want %q", c.amount, got, c.want)
			}
		}
	})

	t.Run("FormatTerm", func(t *testing.T) {
		one, twenty := 1, 20

		if got := FormatTerm(nil); got != "Permanent" {
			t.Errorf("expected 'Permanent', got %q", got)
		}
		if got := FormatTerm(&one); got != "1 Year" {
			t.Errorf("expected '1 Year', got %q", got)
		}
		if got := FormatTerm(&twenty); got != "20 Years" {
			t.Errorf("expected '20 Years', got %q", got)
		}
	})
}

func TestRecommendationRenderers(t *testing.T) {
	term := 20
	rec := &models.Recommendation{
		Policy:      "Term Life",
		Coverage:    500000,
		Term:        &term,
		Explanation: "A term policy fits a young family with dependents.",
	}

	t.Run("Text", func(t *testing.T) {
		output := string(RecommendationToText(rec))

		if !strings.Contains(output, "Policy: Term Life") {
			t.Errorf("text missing policy, got: %s", output)
		}
		if !strings.Contains(output, "Coverage: $500,000") {
			t.Errorf("text missing formatted coverage")
		}
		if !strings.Contains(output, "Term: 20 Years") {
			t.Errorf("text missing formatted term")
		}
		if !strings.Contains(output, "young family") {
			t.Errorf("text missing explanation")
		}
	})

	t.Run("Markdown", func(t *testing.T) {
		output := string(RecommendationToMarkdown(rec))

		if !strings.Contains(output, "# Term Life") {
			t.Errorf("Markdown missing title")
		}
		if !strings.Contains(output, "**Coverage**: $500,000") {
			t.Errorf("Markdown missing coverage")
		}
		if !strings.Contains(output, "## Why") {
			t.Errorf("Markdown missing explanation section")
		}
	})

	t.Run("JSON", func(t *testing.T) {
		data, err := RecommendationToJSON(rec)
		if err != nil {
			t.Fatalf("RecommendationToJSON failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, `"Term Life"`) {
			t.Errorf("JSON missing policy")
		}
		if !strings.Contains(output, "500000") {
			t.Errorf("JSON missing coverage")
		}
	})

	t.Run("Permanent Policy", func(t *testing.T) {
		whole := &models.Recommendation{Policy: "Whole Life", Coverage: 250000, Term: nil}

		output := string(RecommendationToText(whole))
		if !strings.Contains(output, "Term: Permanent") {
			t.Errorf("expected permanent term, got: %s", output)
		}
	})
}

func TestHistoryRenderers(t *testing.T) {
	submissions := testSubmissions(t)

	t.Run("CSV", func(t *testing.T) {
		data, err := HistoryToCSV(submissions)
		if err != nil {
			t.Fatalf("HistoryToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "ID,Sequence,Age,Income,Dependents,Risk,Policy,Coverage,Term,Created") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "sub1") || !strings.Contains(output, "Term Life") {
			t.Errorf("CSV missing first submission")
		}
		if !strings.Contains(output, "Permanent") {
			t.Errorf("CSV missing permanent term for whole life row")
		}
	})

	t.Run("Markdown", func(t *testing.T) {
		output := string(HistoryToMarkdown(submissions))

		if !strings.Contains(output, "# Recommendation History") {
			t.Errorf("Markdown missing title")
		}
		if !strings.Contains(output, "**Submissions**: 2") {
			t.Errorf("Markdown missing count")
		}
		if !strings.Contains(output, "| 1 | 30 | $80,000 | 2 | Medium | Term Life | $500,000 | 20 Years |") {
			t.Errorf("Markdown missing first row, got: %s", output)
		}
		if !strings.Contains(output, "| Whole Life | $250,000 | Permanent |") {
			t.Errorf("Markdown missing second row")
		}
	})

	t.Run("Text", func(t *testing.T) {
		output := string(HistoryToText(submissions))

		if !strings.Contains(output, "Submissions: 2") {
			t.Errorf("text missing count")
		}
		if !strings.Contains(output, "1. Term Life - $500,000 over 20 Years") {
			t.Errorf("text missing first entry, got: %s", output)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		data, err := HistoryToJSON(submissions)
		if err != nil {
			t.Fatalf("HistoryToJSON failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, `"recommended_policy": "Term Life"`) {
			t.Errorf("JSON missing policy field, got: %s", output)
		}
		if !strings.Contains(output, `"recommended_term": null`) {
			t.Errorf("JSON missing null term for whole life entry")
		}
		if !strings.Contains(output, `"risk_tolerance": "Low"`) {
			t.Errorf("JSON missing risk tolerance")
		}
	})
}

func TestWriteHistoryExport(t *testing.T) {
	submissions := testSubmissions(t)

	t.Run("WithDefaultPath", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		path, err := WriteHistoryExport(submissions, "csv", "")
		if err != nil {
			t.Fatalf("WriteHistoryExport failed: %v", err)
		}

		if path != "history.csv" {
			t.Errorf("Expected 'history.csv', got '%s'", path)
		}
		th.AssertFileExists(t, path)

		content := th.MustReadFile(t, path)
		if !strings.Contains(content, "Term Life") {
			t.Errorf("exported CSV missing data")
		}
	})

	t.Run("WithCustomPath", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		path, err := WriteHistoryExport(submissions, "markdown", "my_history.md")
		if err != nil {
			t.Fatalf("WriteHistoryExport failed: %v", err)
		}

		if path != "my_history.md" {
			t.Errorf("Expected 'my_history.md', got '%s'", path)
		}
		th.AssertFileExists(t, path)
	})

	t.Run("EmptyFormatDefaultsToText", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		path, err := WriteHistoryExport(submissions, "", "")
		if err != nil {
			t.Fatalf("WriteHistoryExport failed: %v", err)
		}
		if path != "history.txt" {
			t.Errorf("Expected 'history.txt', got '%s'", path)
		}
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		if _, err := WriteHistoryExport(submissions, "xml", ""); err == nil {
			t.Error("expected error for unsupported format")
		}
	})
}
