package shared

import (
	"testing"
)

func TestMigrations(t *testing.T) {
	t.Run("RunMigrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		for _, table := range []string{"session_tokens", "submissions", "submissions_sequence"} {
			var name string
			err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
			if err != nil {
				t.Errorf("expected table %s to exist: %v", table, err)
			}
		}

		var seq int
		if err := db.QueryRow("SELECT value FROM submissions_sequence WHERE id = 1").Scan(&seq); err != nil {
			t.Fatalf("failed to read sequence seed: %v", err)
		}
		if seq != 0 {
			t.Errorf("expected sequence seeded at 0, got %d", seq)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
		if err := RunMigrations(db); err != nil {
			t.Fatalf("expected second run to be a no-op, got: %v", err)
		}

		// A second run must not re-seed the sequence table.
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM submissions_sequence").Scan(&count); err != nil {
			t.Fatalf("failed to count sequence rows: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 sequence row, got %d", count)
		}
	})

	t.Run("Rollback", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback: %v", err)
		}

		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='session_tokens'").Scan(&name)
		if err == nil {
			t.Error("expected session_tokens table to be dropped")
		}
	})

	t.Run("Rollback Without Migrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := createMigrationsTable(db); err != nil {
			t.Fatalf("failed to create migrations table: %v", err)
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when no migrations applied")
		}
	})
}
