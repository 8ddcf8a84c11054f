package repositories

import (
	"database/sql"
	"testing"

	"github.com/desertthunder/insure/internal/models"
	"github.com/desertthunder/insure/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testSubmission(term *int) *models.Submission {
	profile := models.ProfileInput{Age: 30, Income: 80000, Dependents: 1, RiskTolerance: models.RiskMedium}
	rec := models.Recommendation{Policy: "Term Life", Coverage: 500000, Term: term, Explanation: "..."}
	return models.NewSubmission(0, profile, rec)
}

func TestTokenRepository(t *testing.T) {
	pair := models.TokenPair{AccessToken: "A", RefreshToken: "R"}

	t.Run("Load Empty Store", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		loaded, err := NewTokenRepository(db).Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if loaded != nil {
			t.Errorf("expected nil pair from empty store, got %+v", loaded)
		}
	})

	t.Run("Save And Load", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTokenRepository(db)
		if err := repo.Save(pair); err != nil {
			t.Fatalf("failed to save tokens: %v", err)
		}

		loaded, err := repo.Load()
		if err != nil {
			t.Fatalf("failed to load tokens: %v", err)
		}
		if loaded == nil || *loaded != pair {
			t.Errorf("expected %+v, got %+v", pair, loaded)
		}
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTokenRepository(db)
		if err := repo.Save(pair); err != nil {
			t.Fatalf("failed to save tokens: %v", err)
		}

		next := models.TokenPair{AccessToken: "A2", RefreshToken: "R2"}
		if err := repo.Save(next); err != nil {
			t.Fatalf("failed to overwrite tokens: %v", err)
		}

		loaded, err := repo.Load()
		if err != nil {
			t.Fatalf("failed to load tokens: %v", err)
		}
		if *loaded != next {
			t.Errorf("expected %+v, got %+v", next, loaded)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM session_tokens").Scan(&count); err != nil {
			t.Fatalf("failed to count rows: %v", err)
		}
		if count != 2 {
			t.Errorf("expected exactly 2 entries, got %d", count)
		}
	})

	t.Run("Rejects Partial Pair", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		if err := NewTokenRepository(db).Save(models.TokenPair{AccessToken: "A"}); err == nil {
			t.Error("expected error saving partial pair")
		}
	})

	t.Run("Partial Row Treated As No Session", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		if _, err := db.Exec(`INSERT INTO session_tokens (name, value) VALUES ('access_token', 'A')`); err != nil {
			t.Fatalf("failed to seed partial row: %v", err)
		}

		loaded, err := NewTokenRepository(db).Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if loaded != nil {
			t.Errorf("expected nil pair for partial storage, got %+v", loaded)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTokenRepository(db)
		if err := repo.Save(pair); err != nil {
			t.Fatalf("failed to save tokens: %v", err)
		}

		if err := repo.Clear(); err != nil {
			t.Fatalf("failed to clear tokens: %v", err)
		}

		loaded, err := repo.Load()
		if err != nil {
			t.Fatalf("failed to load tokens: %v", err)
		}
		if loaded != nil {
			t.Errorf("expected nil pair after clear, got %+v", loaded)
		}

		// Clearing twice is fine.
		if err := repo.Clear(); err != nil {
			t.Errorf("expected idempotent clear, got %v", err)
		}
	})
}

func TestSubmissionRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSubmissionRepository(db)
		term := 20
		submission := testSubmission(&term)

		if err := repo.Create(submission); err != nil {
			t.Fatalf("failed to create submission: %v", err)
		}

		if submission.ID() == "" {
			t.Error("submission ID should be set after creation")
		}
		if submission.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", submission.Sequence())
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSubmissionRepository(db)
		term := 20
		submission := testSubmission(&term)

		if err := repo.Create(submission); err != nil {
			t.Fatalf("failed to create submission: %v", err)
		}

		retrieved, err := repo.Get(submission.ID())
		if err != nil {
			t.Fatalf("failed to get submission: %v", err)
		}

		if retrieved.ID() != submission.ID() {
			t.Errorf("expected ID %s, got %s", submission.ID(), retrieved.ID())
		}
		if retrieved.Recommendation().Policy != "Term Life" {
			t.Errorf("expected policy 'Term Life', got %s", retrieved.Recommendation().Policy)
		}
		if retrieved.Recommendation().Term == nil || *retrieved.Recommendation().Term != 20 {
			t.Errorf("expected term 20, got %v", retrieved.Recommendation().Term)
		}
		if retrieved.Profile().RiskTolerance != models.RiskMedium {
			t.Errorf("expected risk Medium, got %s", retrieved.Profile().RiskTolerance)
		}
	})

	t.Run("Get Missing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		if _, err := NewSubmissionRepository(db).Get("nope"); err == nil {
			t.Error("expected error for missing submission")
		}
	})

	t.Run("Nil Term Round-Trips", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSubmissionRepository(db)
		submission := testSubmission(nil)

		if err := repo.Create(submission); err != nil {
			t.Fatalf("failed to create submission: %v", err)
		}

		retrieved, err := repo.Get(submission.ID())
		if err != nil {
			t.Fatalf("failed to get submission: %v", err)
		}
		if retrieved.Recommendation().Term != nil {
			t.Errorf("expected nil term, got %v", *retrieved.Recommendation().Term)
		}
	})

	t.Run("List Newest First", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSubmissionRepository(db)
		first := testSubmission(nil)
		second := testSubmission(nil)

		if err := repo.Create(first); err != nil {
			t.Fatalf("failed to create submission: %v", err)
		}
		if err := repo.Create(second); err != nil {
			t.Fatalf("failed to create submission: %v", err)
		}

		listed, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list submissions: %v", err)
		}

		if len(listed) != 2 {
			t.Fatalf("expected 2 submissions, got %d", len(listed))
		}
		if listed[0].ID() != second.ID() {
			t.Error("expected newest submission first")
		}
	})

	t.Run("List With Limit", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSubmissionRepository(db)
		for range 3 {
			if err := repo.Create(testSubmission(nil)); err != nil {
				t.Fatalf("failed to create submission: %v", err)
			}
		}

		listed, err := repo.List(map[string]any{"limit": 2})
		if err != nil {
			t.Fatalf("failed to list submissions: %v", err)
		}
		if len(listed) != 2 {
			t.Errorf("expected 2 submissions, got %d", len(listed))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSubmissionRepository(db)
		submission := testSubmission(nil)
		if err := repo.Create(submission); err != nil {
			t.Fatalf("failed to create submission: %v", err)
		}

		if err := repo.Delete(submission.ID()); err != nil {
			t.Fatalf("failed to delete submission: %v", err)
		}

		if err := repo.Delete(submission.ID()); err == nil {
			t.Error("expected error deleting missing submission")
		}
	})

	t.Run("DeleteAll", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSubmissionRepository(db)
		for range 2 {
			if err := repo.Create(testSubmission(nil)); err != nil {
				t.Fatalf("failed to create submission: %v", err)
			}
		}

		if err := repo.DeleteAll(); err != nil {
			t.Fatalf("failed to clear submissions: %v", err)
		}

		listed, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list submissions: %v", err)
		}
		if len(listed) != 0 {
			t.Errorf("expected empty history, got %d entries", len(listed))
		}
	})
}
