package workflow

import (
	"context"
	"fmt"
	"time"

	"ankivoice/internal/annotate"
	"ankivoice/internal/collection"
	"ankivoice/internal/logging"
	"ankivoice/internal/services"
)

// PlanOptions controls a planning pass.
type PlanOptions struct {
	// Extract adds tasks for sentences that already reference audio.
	Extract bool
	// Progress receives the processed note count every 100 notes.
	Progress func(processed int)
}

// Plan is a computed but unapplied set of note rewrites and audio tasks.
type Plan struct {
	annotate.Plan
	Collection string    `json:"collection"`
	Extract    bool      `json:"extract"`
	CreatedAt  time.Time `json:"created_at"`
}

// FilenameRange returns the first and last newly assigned filenames, or ok
// false when the plan assigns none.
func (p *Plan) FilenameRange() (first, last string, ok bool) {
	if p == nil || len(p.Updates) == 0 {
		return "", "", false
	}
	return p.Updates[0].Filename, p.Updates[len(p.Updates)-1].Filename, true
}

// CommitResult reports an applied plan.
type CommitResult struct {
	Applied int    `json:"applied"`
	Backup  string `json:"backup,omitempty"`
}

// Plan reads every note and computes rewrites and tasks without writing.
func (r *Runner) Plan(ctx context.Context, opts PlanOptions) (*Plan, error) {
	store, err := collection.Open(ctx, r.cfg.Paths.Collection)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	notes, err := store.ListNotes(ctx)
	if err != nil {
		return nil, err
	}

	computed := annotate.Annotate(notes, annotate.Options{
		Extract:    opts.Extract,
		FieldIndex: r.cfg.Annotation.FieldIndex,
		Prefix:     r.cfg.Annotation.FilenamePrefix,
		Progress:   opts.Progress,
	})
	r.log(ctx).Info("annotation planned",
		logging.Int("scanned", computed.Counts.Scanned),
		logging.Int("skipped", computed.Counts.Skipped),
		logging.Int("annotated", computed.Counts.Annotated),
		logging.Int("existing", computed.Counts.Existing),
		logging.Int("extracted", computed.Counts.Extracted),
	)
	return &Plan{
		Plan:       computed,
		Collection: r.cfg.Paths.Collection,
		Extract:    opts.Extract,
		CreatedAt:  r.now(),
	}, nil
}

// Commit applies plan's updates in one transaction. When backups are enabled
// a snapshot is written first. A note modified since planning aborts the
// whole commit with collection.ErrConflict.
func (r *Runner) Commit(ctx context.Context, plan *Plan) (CommitResult, error) {
	if plan == nil || len(plan.Updates) == 0 {
		return CommitResult{}, nil
	}
	store, err := collection.Open(ctx, plan.Collection)
	if err != nil {
		return CommitResult{}, err
	}
	defer store.Close()

	now := r.now()
	var result CommitResult
	if r.cfg.Annotation.Backup {
		result.Backup = backupPath(plan.Collection, now)
		if err := store.Backup(ctx, result.Backup); err != nil {
			return CommitResult{}, err
		}
		r.log(ctx).Info("collection backed up", logging.String("backup", result.Backup))
	}

	applied, err := store.ApplyUpdates(ctx, plan.Updates, now)
	if err != nil {
		return result, err
	}
	result.Applied = applied
	r.log(ctx).Info("updates applied", logging.Int("applied", applied))
	return result, nil
}

func backupPath(collectionPath string, now time.Time) string {
	return fmt.Sprintf("%s.%s.bak", collectionPath, now.UTC().Format("20060102-150405"))
}

// Declined wraps services.ErrUserDeclined for a plan the operator rejected.
func Declined(updates int) error {
	return services.Wrap(services.ErrUserDeclined, "workflow", "commit",
		fmt.Sprintf("%d pending updates discarded", updates), nil)
}
