package cache

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/csvcode/internal/dialect"
)

// Detector wraps another detector and serves repeated detections of an
// unchanged file from the Store. Failed detections are not cached.
type Detector struct {
	store  *Store
	next   dialect.Detector
	logger *slog.Logger
}

// NewDetector creates a caching detector in front of next.
func NewDetector(store *Store, next dialect.Detector, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Detector{store: store, next: next, logger: logger}
}

// Detect implements dialect.Detector. Cache errors and invalid cached
// entries are logged and the wrapped detector is used instead.
func (d *Detector) Detect(ctx context.Context, path string, opts dialect.DetectOptions) (dialect.Dialect, error) {
	fp, err := NewFingerprint(path, opts.NumChars, opts.Encoding)
	if err != nil {
		return d.next.Detect(ctx, path, opts)
	}

	cached, ok, err := d.store.Get(ctx, fp)
	if ok && err == nil {
		err = cached.Validate()
	}
	switch {
	case err != nil:
		d.logger.Warn("dialect cache lookup failed", slog.String("error", err.Error()))
	case ok:
		d.logger.Debug("dialect cache hit", slog.String("path", fp.Path))
		return cached, nil
	}

	found, err := d.next.Detect(ctx, path, opts)
	if err != nil {
		return dialect.Dialect{}, err
	}
	if err := d.store.Put(ctx, fp, found); err != nil {
		d.logger.Warn("failed to cache dialect", slog.String("error", err.Error()))
	}
	return found, nil
}
