package models

import (
	"fmt"
	"time"
)

// Submission records one profile submission and the recommendation it
// produced, kept as local history.
type Submission struct {
	id             string
	sequence       int
	profile        ProfileInput
	recommendation Recommendation
	createdAt      time.Time
}

var _ Model = (*Submission)(nil)

// NewSubmission creates a Submission for the given profile and result.
// The ID is assigned by the repository on Create.
func NewSubmission(sequence int, profile ProfileInput, recommendation Recommendation) *Submission {
	return &Submission{
		sequence:       sequence,
		profile:        profile,
		recommendation: recommendation,
		createdAt:      time.Now(),
	}
}

func (s *Submission) ID() string                     { return s.id }
func (s *Submission) Sequence() int                  { return s.sequence }
func (s *Submission) Profile() ProfileInput          { return s.profile }
func (s *Submission) Recommendation() Recommendation { return s.recommendation }
func (s *Submission) CreatedAt() time.Time           { return s.createdAt }

func (s *Submission) SetID(id string)           { s.id = id }
func (s *Submission) SetSequence(sequence int)  { s.sequence = sequence }
func (s *Submission) SetCreatedAt(ts time.Time) { s.createdAt = ts }

// Validate checks the recorded profile and result are well-formed.
func (s *Submission) Validate() error {
	if err := s.profile.Validate(); err != nil {
		return err
	}
	if s.recommendation.Policy == "" {
		return fmt.Errorf("submission has no recommended policy")
	}
	if s.recommendation.Coverage <= 0 {
		return fmt.Errorf("submission has no recommended coverage")
	}
	return nil
}
