package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/insure/internal/formatter"
	"github.com/desertthunder/insure/internal/models"
	"github.com/desertthunder/insure/internal/services"
	"github.com/desertthunder/insure/internal/session"
	"github.com/desertthunder/insure/internal/shared"
	"github.com/urfave/cli/v3"
)

// Quote requests a recommendation for the profile given via flags and
// records it in history unless --no-save is set.
func (r *Runner) Quote(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	if r.session.Status() != session.Authenticated {
		return shared.ErrNotAuthenticated
	}

	risk, err := models.ParseRiskTolerance(cmd.String("risk"))
	if err != nil {
		return err
	}

	profile := models.ProfileInput{
		Age:           cmd.Int("age"),
		Income:        cmd.Int("income"),
		Dependents:    cmd.Int("dependents"),
		RiskTolerance: risk,
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	r.logger.Info("requesting recommendation", "age", profile.Age, "risk", profile.RiskTolerance)

	rec, err := r.svc.Recommend(ctx, profile)
	if err != nil {
		return fmt.Errorf("recommendation failed: %s", services.ErrorMessage(err))
	}

	if !cmd.Bool("no-save") {
		sub := models.NewSubmission(0, profile, *rec)
		if err := r.history.Create(sub); err != nil {
			r.logger.Warn("failed to record submission", "error", err)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(rec, cmd.Bool("pretty"))
	}

	return r.writePlain("%s", formatter.RecommendationToText(rec))
}
