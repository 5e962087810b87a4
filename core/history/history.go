package history

import (
	"context"
	"fmt"
	"time"

	"timingcfg/core/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Revision records one rewrite of a timing config.
type Revision struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// RunID ties revisions written by one invocation together.
	RunID string `gorm:"size:36;index" json:"run_id"`
	// Operation is the command that caused the write, e.g. "check".
	Operation string `gorm:"size:32" json:"operation"`
	// Source is the pulsar name parsed from the file name, when known.
	Source string `gorm:"size:64;index" json:"source"`
	// Path is the config that was read.
	Path string `gorm:"size:1024" json:"path"`
	// Output is the file that was written.
	Output string `gorm:"size:1024" json:"output"`
	// Fields lists the keys that changed. Empty for unconditional writes
	// that changed nothing.
	Fields    []string  `gorm:"serializer:json" json:"fields"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// Recorder stores and lists revisions.
type Recorder interface {
	Record(ctx context.Context, rev *Revision) error
	Recent(ctx context.Context, limit int) ([]Revision, error)
}

// GormRecorder keeps revisions in a GORM database.
type GormRecorder struct {
	db *gorm.DB
}

// NewGormRecorder migrates the revisions table and returns a recorder.
func NewGormRecorder(db *gorm.DB) (*GormRecorder, error) {
	if err := db.AutoMigrate(&Revision{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history: %w", err)
	}
	return &GormRecorder{db: db}, nil
}

// Record inserts rev. CreatedAt is filled in when zero.
func (r *GormRecorder) Record(ctx context.Context, rev *Revision) error {
	if err := r.db.WithContext(ctx).Create(rev).Error; err != nil {
		return fmt.Errorf("failed to record revision for %s: %w", rev.Path, err)
	}
	return nil
}

// Recent returns up to limit revisions, newest first.
func (r *GormRecorder) Recent(ctx context.Context, limit int) ([]Revision, error) {
	var revs []Revision
	q := r.db.WithContext(ctx).Order("created_at desc").Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&revs).Error; err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return revs, nil
}

// Nop discards revisions.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(context.Context, *Revision) error { return nil }

// Recent implements Recorder.
func (Nop) Recent(context.Context, int) ([]Revision, error) { return nil, nil }

// Open returns a GORM recorder for cfg, or Nop when history is disabled or
// the database cannot be reached. History never blocks a run.
func Open(cfg database.Config, log *zap.Logger) Recorder {
	if !cfg.Enabled {
		return Nop{}
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Warn("history disabled: database unavailable", zap.String("driver", cfg.Driver), zap.Error(err))
		return Nop{}
	}

	rec, err := NewGormRecorder(db)
	if err != nil {
		log.Warn("history disabled", zap.Error(err))
		return Nop{}
	}
	return rec
}
