package reconcile

import (
	"context"

	"timingcfg/core/document"
	"timingcfg/core/logger"
	"timingcfg/core/release"

	"go.uber.org/zap"
)

// Engine keeps the declared inputs of timing configs in line with a TOA
// release. It is safe to reuse across files but holds no per-file state.
type Engine struct {
	lister release.Lister
	store  *document.Store
	logger *zap.Logger
}

// NewEngine creates an engine. A nil logger disables diagnostics.
func NewEngine(lister release.Lister, store *document.Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{lister: lister, store: store, logger: log}
}

// Run plans doc against rel, logs every check and, unless dryRun is set,
// applies the plan. It returns the plan and the fields that were replaced.
func (e *Engine) Run(ctx context.Context, path string, doc *document.Document, rel release.Config, dryRun bool) (*Plan, []string, error) {
	log := logger.WithFile(e.logger, path)

	plan, err := e.Plan(ctx, path, doc, rel)
	if err != nil {
		return nil, nil, err
	}
	logChecks(log, plan)

	if dryRun {
		for _, a := range plan.Actions {
			log.Info("dry run: would replace field", zap.String("field", a.Field), zap.String("reason", a.Reason))
		}
		return plan, nil, nil
	}
	return plan, e.Apply(doc, plan), nil
}

// Apply replaces the fields named by the plan's actions and returns them in
// order. Positions and annotations of the replaced keys are kept.
func (e *Engine) Apply(doc *document.Document, plan *Plan) []string {
	changes := make([]string, 0, len(plan.Actions))
	for _, a := range plan.Actions {
		doc.Set(a.Field, a.Value)
		changes = append(changes, a.Field)
	}
	return changes
}

// Reconcile loads the config at path, reconciles it with rel and saves it to
// the resolved output path only when a field was replaced. A second run
// against an unchanged release therefore writes nothing.
func (e *Engine) Reconcile(ctx context.Context, path string, rel release.Config, opts Options) (*Result, error) {
	log := logger.WithFile(e.logger, path)

	if _, err := ParseIdentity(path); err != nil {
		return nil, err
	}
	doc, err := e.store.Load(path)
	if err != nil {
		return nil, err
	}

	plan, changes, err := e.Run(ctx, path, doc, rel, opts.DryRun)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Plan:    plan,
		Changes: changes,
		Output:  document.ResolveOutputPath(path, opts.Overwrite, opts.Suffix),
	}
	if len(changes) == 0 {
		log.Debug("no changes, skipping write")
		return result, nil
	}

	if err := e.store.Save(doc, result.Output); err != nil {
		return nil, err
	}
	result.Written = true
	log.Info("wrote reconciled config", zap.String("output", result.Output), zap.Strings("changes", changes))
	return result, nil
}
