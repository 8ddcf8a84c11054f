package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/insure/internal/models"
	"github.com/desertthunder/insure/internal/shared"
)

// SubmissionRepository implements [models.Repository] for [models.Submission] persistence.
type SubmissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository creates a new [SubmissionRepository] with the given database connection
func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts a new submission into the database with generated ID and sequence
func (r *SubmissionRepository) Create(submission *models.Submission) error {
	sequence, err := NextSequence(r.db, "submissions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	submission.SetID(id)
	submission.SetSequence(sequence)

	if err := submission.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO submissions (id, sequence, age, income, dependents, risk_tolerance,
			recommended_policy, recommended_coverage, recommended_term, explanation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	profile := submission.Profile()
	rec := submission.Recommendation()

	var term sql.NullInt64
	if rec.Term != nil {
		term = sql.NullInt64{Int64: int64(*rec.Term), Valid: true}
	}

	_, err = r.db.Exec(query, id, sequence, profile.Age, profile.Income, profile.Dependents,
		profile.RiskTolerance.String(), rec.Policy, rec.Coverage, term, rec.Explanation, submission.CreatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	return nil
}

// Get retrieves a submission by ID
func (r *SubmissionRepository) Get(id string) (*models.Submission, error) {
	query := `
		SELECT id, sequence, age, income, dependents, risk_tolerance,
			recommended_policy, recommended_coverage, recommended_term, explanation, created_at
		FROM submissions
		WHERE id = ?
	`

	submission, err := scanSubmission(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("submission not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query submission: %w", err)
	}

	return submission, nil
}

// Delete removes a submission by ID
func (r *SubmissionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM submissions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("submission not found: %s", id)
	}

	return nil
}

// DeleteAll clears the entire submission history.
func (r *SubmissionRepository) DeleteAll() error {
	if _, err := r.db.Exec(`DELETE FROM submissions`); err != nil {
		return fmt.Errorf("failed to clear submissions: %w", err)
	}
	return nil
}

// List retrieves submissions matching the given criteria, newest first.
// Supported criteria: "policy" (string), "limit" (int).
func (r *SubmissionRepository) List(criteria map[string]any) ([]*models.Submission, error) {
	query := `
		SELECT id, sequence, age, income, dependents, risk_tolerance,
			recommended_policy, recommended_coverage, recommended_term, explanation, created_at
		FROM submissions
	`

	args := []any{}

	if policy, ok := criteria["policy"].(string); ok && policy != "" {
		query += " WHERE recommended_policy = ?"
		args = append(args, policy)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.Submission
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, submission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return submissions, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (*models.Submission, error) {
	var (
		id        string
		sequence  int
		age       int
		income    int
		dependent int
		risk      string
		policy    string
		coverage  int
		term      sql.NullInt64
		expl      string
		createdAt time.Time
	)

	err := row.Scan(&id, &sequence, &age, &income, &dependent, &risk, &policy, &coverage, &term, &expl, &createdAt)
	if err != nil {
		return nil, err
	}

	profile := models.ProfileInput{
		Age:           age,
		Income:        income,
		Dependents:    dependent,
		RiskTolerance: models.RiskTolerance(risk),
	}

	rec := models.Recommendation{Policy: policy, Coverage: coverage, Explanation: expl}
	if term.Valid {
		t := int(term.Int64)
		rec.Term = &t
	}

	submission := models.NewSubmission(sequence, profile, rec)
	submission.SetID(id)
	submission.SetCreatedAt(createdAt)

	return submission, nil
}
