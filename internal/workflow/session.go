package workflow

import (
	"context"

	"ankivoice/internal/generate"
	"ankivoice/internal/logging"
)

// Confirmer shows a plan to the operator and returns their decision.
type Confirmer func(ctx context.Context, plan *Plan) (bool, error)

// AnnotateRequest selects what happens around a plan.
type AnnotateRequest struct {
	Extract bool
	// WriteList exports the plan's tasks to ListPath (or the configured list).
	WriteList bool
	ListPath  string
	// GenerateAudio synthesizes the plan's tasks after the commit decision.
	GenerateAudio bool
	// Confirm is asked before committing; a nil Confirm never commits.
	Confirm  Confirmer
	Progress func(processed int)
}

// AnnotateOutcome reports each step of an annotation run.
type AnnotateOutcome struct {
	Plan        *Plan             `json:"plan"`
	Commit      *CommitResult     `json:"commit,omitempty"`
	Declined    bool              `json:"declined"`
	ListPath    string            `json:"list_path,omitempty"`
	ListEntries int               `json:"list_entries"`
	Generation  *generate.Summary `json:"generation,omitempty"`
}

// Annotate plans, asks for confirmation, and commits when approved. The task
// list and audio generation run whether or not the operator approved, so
// declining still yields files for review.
func (r *Runner) Annotate(ctx context.Context, req AnnotateRequest) (*AnnotateOutcome, error) {
	plan, err := r.Plan(ctx, PlanOptions{Extract: req.Extract, Progress: req.Progress})
	if err != nil {
		return nil, err
	}
	outcome := &AnnotateOutcome{Plan: plan}

	if len(plan.Updates) > 0 {
		approved := false
		if req.Confirm != nil {
			approved, err = req.Confirm(ctx, plan)
			if err != nil {
				return outcome, err
			}
		}
		if approved {
			result, err := r.Commit(ctx, plan)
			if err != nil {
				return outcome, err
			}
			outcome.Commit = &result
		} else {
			outcome.Declined = true
			r.log(ctx).Info("pending updates discarded", logging.Int("updates", len(plan.Updates)))
		}
	}

	if req.WriteList && len(plan.Tasks) > 0 {
		outcome.ListPath = r.ListPath(req.ListPath)
		outcome.ListEntries, err = r.ExportList(plan, outcome.ListPath)
		if err != nil {
			return outcome, err
		}
	}

	if req.GenerateAudio && len(plan.Tasks) > 0 {
		summary, err := r.Generate(ctx, plan.Tasks)
		outcome.Generation = &summary
		if err != nil {
			return outcome, err
		}
	}
	return outcome, nil
}

// DeclinedError returns Declined(n) when outcome was rejected, else nil.
func (o *AnnotateOutcome) DeclinedError() error {
	if o == nil || !o.Declined {
		return nil
	}
	return Declined(len(o.Plan.Updates))
}
