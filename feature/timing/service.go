package timing

import (
	"context"

	"timingcfg/core/document"
	"timingcfg/core/history"
	"timingcfg/core/logger"
	"timingcfg/core/reconcile"
	"timingcfg/core/release"
	"timingcfg/feature/comments"
	"timingcfg/feature/fields"
	"timingcfg/feature/schema"

	"go.uber.org/zap"
)

// Operation names, as recorded in history.
const (
	OpCheck         = "check"
	OpReconcile     = "reconcile"
	OpAddIterations = "add-iterations"
	OpAddNoise      = "add-noise"
	OpAddDMX        = "add-dmx"
	OpAddOutlier    = "add-outlier"
	OpCurate        = "curate"
	OpSet           = "set"
	OpRoundtrip     = "roundtrip"
)

// AnnotationsChanged appears in Outcome.Changes when curation rewrote any
// annotation.
const AnnotationsChanged = "annotations"

// Options controls every operation of a Service.
type Options struct {
	// Release is the release configs are reconciled against.
	Release release.Config
	// Overwrite writes in place instead of to a suffixed copy.
	Overwrite bool
	// Suffix is appended to outputs when not overwriting.
	Suffix string
	// RoundtripSuffix is appended to round-trip outputs when not overwriting.
	RoundtripSuffix string
	// NoiseDir fills results-dir when the noise block is added.
	NoiseDir string
	// DryRun does everything except writing.
	DryRun bool
	// RunID is recorded with every revision.
	RunID string
}

// Outcome reports what an operation did to one file.
type Outcome struct {
	// Path is the config that was read.
	Path string `json:"path"`
	// Output is the path written to, or that would have been written to.
	Output string `json:"output"`
	// Written reports whether a save happened.
	Written bool `json:"written"`
	// Changes lists what changed, or would change in a dry run.
	Changes []string `json:"changes"`
}

// Service runs timing config operations one file at a time.
type Service struct {
	store    *document.Store
	engine   *reconcile.Engine
	recorder history.Recorder
	logger   *zap.Logger
	opts     Options
}

// NewService creates a new timing config service. A nil recorder disables
// history.
func NewService(store *document.Store, engine *reconcile.Engine, recorder history.Recorder, log *zap.Logger, opts Options) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if recorder == nil {
		recorder = history.Nop{}
	}
	if opts.Suffix == "" {
		opts.Suffix = document.DefaultSuffix
	}
	if opts.RoundtripSuffix == "" {
		opts.RoundtripSuffix = document.DefaultRoundtripSuffix
	}
	return &Service{
		store:    store,
		engine:   engine,
		recorder: recorder,
		logger:   log,
		opts:     opts,
	}
}

// Check reconciles path with the release, adds every missing schema field and
// curates annotations, then saves once if anything changed.
func (s *Service) Check(ctx context.Context, path string) (*Outcome, error) {
	if _, err := reconcile.ParseIdentity(path); err != nil {
		return nil, err
	}
	return s.run(ctx, OpCheck, path, s.opts.Suffix, false, func(doc *document.Document) ([]string, error) {
		plan, changes, err := s.engine.Run(ctx, path, doc, s.opts.Release, s.opts.DryRun)
		if err != nil {
			return nil, err
		}
		if s.opts.DryRun {
			changes = planned(plan)
		}

		added, err := schema.EnsureAll(doc.Record, schema.Canonical(s.opts.NoiseDir), s.fileLogger(path))
		if err != nil {
			return nil, err
		}
		changes = append(changes, added...)

		if comments.NewCurator(s.fileLogger(path)).Curate(doc.Record) {
			changes = append(changes, AnnotationsChanged)
		}
		return changes, nil
	})
}

// Reconcile brings tim-directory and toas in line with the release and saves
// only when one of them changed.
func (s *Service) Reconcile(ctx context.Context, path string) (*Outcome, error) {
	res, err := s.engine.Reconcile(ctx, path, s.opts.Release, reconcile.Options{
		DryRun:    s.opts.DryRun,
		Overwrite: s.opts.Overwrite,
		Suffix:    s.opts.Suffix,
	})
	if err != nil {
		return nil, err
	}

	out := &Outcome{Path: path, Output: res.Output, Written: res.Written, Changes: res.Changes}
	if s.opts.DryRun {
		out.Changes = planned(res.Plan)
	}
	if out.Written {
		s.record(ctx, OpReconcile, out)
	}
	return out, nil
}

// AddIterations adds n-iterations when missing.
func (s *Service) AddIterations(ctx context.Context, path string) (*Outcome, error) {
	return s.ensure(ctx, OpAddIterations, path, schema.Iterations())
}

// AddNoise adds the noise block when missing.
func (s *Service) AddNoise(ctx context.Context, path string) (*Outcome, error) {
	return s.ensure(ctx, OpAddNoise, path, schema.Noise(s.opts.NoiseDir))
}

// AddDMX adds the dmx block when missing.
func (s *Service) AddDMX(ctx context.Context, path string) (*Outcome, error) {
	return s.ensure(ctx, OpAddDMX, path, schema.DMX())
}

// AddOutlier adds the outlier block when missing.
func (s *Service) AddOutlier(ctx context.Context, path string) (*Outcome, error) {
	return s.ensure(ctx, OpAddOutlier, path, schema.Outlier())
}

func (s *Service) ensure(ctx context.Context, op, path string, f schema.Field) (*Outcome, error) {
	return s.run(ctx, op, path, s.opts.Suffix, false, func(doc *document.Document) ([]string, error) {
		added, err := schema.Ensure(doc.Record, f, s.fileLogger(path))
		if err != nil || !added {
			return nil, err
		}
		return []string{f.Key}, nil
	})
}

// Curate applies the canonical annotations and always saves.
func (s *Service) Curate(ctx context.Context, path string) (*Outcome, error) {
	return s.run(ctx, OpCurate, path, s.opts.Suffix, true, func(doc *document.Document) ([]string, error) {
		if comments.NewCurator(s.fileLogger(path)).Curate(doc.Record) {
			return []string{AnnotationsChanged}, nil
		}
		return nil, nil
	})
}

// SetField sets one field and always saves, even when the field was rejected.
// Rejections are logged and do not fail the operation.
func (s *Service) SetField(ctx context.Context, path, field, value string) (*Outcome, error) {
	return s.run(ctx, OpSet, path, s.opts.Suffix, true, func(doc *document.Document) ([]string, error) {
		// fields.Set logs its own rejections.
		if fields.Set(doc.Record, field, value, s.fileLogger(path)) == nil {
			return []string{field}, nil
		}
		return nil, nil
	})
}

// Roundtrip loads path and saves it unchanged to the round-trip output.
func (s *Service) Roundtrip(ctx context.Context, path string) (*Outcome, error) {
	return s.run(ctx, OpRoundtrip, path, s.opts.RoundtripSuffix, true, func(*document.Document) ([]string, error) {
		return nil, nil
	})
}

type mutation func(doc *document.Document) ([]string, error)

// run loads path, applies mutate and saves to the resolved output when
// always is set or mutate reported a change.
func (s *Service) run(ctx context.Context, op, path, suffix string, always bool, mutate mutation) (*Outcome, error) {
	log := s.fileLogger(path).With(zap.String("operation", op))

	doc, err := s.store.Load(path)
	if err != nil {
		return nil, err
	}

	changes, err := mutate(doc)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		Path:    path,
		Output:  document.ResolveOutputPath(path, s.opts.Overwrite, suffix),
		Changes: changes,
	}
	if !always && len(changes) == 0 {
		log.Debug("nothing changed, skipping write")
		return out, nil
	}
	if s.opts.DryRun {
		log.Info("dry run, not writing", zap.String("output", out.Output), zap.Strings("changes", changes))
		return out, nil
	}

	if err := s.store.Save(doc, out.Output); err != nil {
		return nil, err
	}
	out.Written = true
	log.Info("wrote config", zap.String("output", out.Output), zap.Strings("changes", changes))
	s.record(ctx, op, out)
	return out, nil
}

// record stores a revision for a completed write. Failures are logged only.
func (s *Service) record(ctx context.Context, op string, out *Outcome) {
	var source string
	if id, err := reconcile.ParseIdentity(out.Path); err == nil {
		source = id.Source
	}
	rev := &history.Revision{
		RunID:     s.opts.RunID,
		Operation: op,
		Source:    source,
		Path:      out.Path,
		Output:    out.Output,
		Fields:    out.Changes,
	}
	if rev.Fields == nil {
		rev.Fields = []string{}
	}
	if err := s.recorder.Record(ctx, rev); err != nil {
		s.fileLogger(out.Path).Warn("failed to record history", zap.Error(err))
	}
}

func (s *Service) fileLogger(path string) *zap.Logger {
	return logger.WithFile(s.logger, path)
}

func planned(plan *reconcile.Plan) []string {
	if plan == nil {
		return nil
	}
	out := make([]string, 0, len(plan.Actions))
	for _, a := range plan.Actions {
		out = append(out, a.Field)
	}
	return out
}
