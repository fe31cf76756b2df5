package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/piggdekk-dashboard/internal/config"
	"github.com/couchcryptid/piggdekk-dashboard/internal/domain"
	"github.com/couchcryptid/piggdekk-dashboard/internal/observability"
	"github.com/couchcryptid/piggdekk-dashboard/internal/tabular"
)

// Dataset is one immutable build of the merged municipality data.
type Dataset struct {
	Records  []domain.MergedRecord
	LoadedAt time.Time
}

// LoadError is the single user-facing diagnostic produced when the merged
// dataset cannot be built. Err carries the underlying cause (a decode,
// schema, or data failure); Hints carry remediation steps.
type LoadError struct {
	Err   error
	Hints []string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading municipality data: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store builds the merged dataset on demand and memoizes it. A cached
// dataset is reused until its TTL elapses, a source file's mtime changes,
// or Invalidate is called — the invalidation policy is explicit rather
// than hidden in a decorator. Reads are safe for concurrent use; the cache
// is process-wide by design (the data is read-mostly reference data, so
// staleness across users within the TTL is acceptable).
type Store struct {
	supportPath  string
	contactsPath string
	ttl          time.Duration
	clock        clockwork.Clock
	logger       *slog.Logger
	metrics      *observability.Metrics

	mu          sync.Mutex
	cached      *Dataset
	supportMod  time.Time
	contactsMod time.Time
	lastErr     error
}

// NewStore creates a Store over the configured data files. Pass a nil
// clock to use real time; tests inject a fake for deterministic TTL
// behavior.
func NewStore(cfg *config.Config, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		supportPath:  cfg.SupportPath(),
		contactsPath: cfg.ContactsPath(),
		ttl:          cfg.DatasetCacheTTL,
		clock:        clock,
		logger:       logger,
		metrics:      metrics,
	}
}

// Dataset returns the merged dataset, rebuilding it if the cache is cold
// or invalid. On failure it returns a *LoadError and drops any cached
// data: serving stale rows after the source files went bad would be
// exactly the partial/incorrect view the diagnostic exists to prevent.
func (s *Store) Dataset() (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.fresh() {
		s.metrics.DatasetCache.WithLabelValues("hit").Inc()
		return s.cached, nil
	}
	s.metrics.DatasetCache.WithLabelValues("miss").Inc()

	ds, err := s.load()
	if err != nil {
		s.cached = nil
		s.lastErr = err
		return nil, err
	}

	s.cached = ds
	s.lastErr = nil
	return ds, nil
}

// Invalidate drops the cached dataset so the next read rebuilds it.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
}

// CheckReadiness reports whether a dataset has been built successfully.
func (s *Store) CheckReadiness(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return nil
	}
	if s.lastErr != nil {
		return s.lastErr
	}
	return errors.New("dataset has not been loaded yet")
}

// fresh reports whether the cached dataset is still valid: within TTL and
// with both source files unmodified since the build.
func (s *Store) fresh() bool {
	if s.clock.Since(s.cached.LoadedAt) >= s.ttl {
		return false
	}
	return modTime(s.supportPath).Equal(s.supportMod) &&
		modTime(s.contactsPath).Equal(s.contactsMod)
}

// load runs one read-validate-merge cycle.
func (s *Store) load() (*Dataset, error) {
	start := time.Now()

	supportMod := modTime(s.supportPath)
	contactsMod := modTime(s.contactsPath)

	support, err := LoadSupport(s.supportPath)
	if err != nil {
		return nil, s.fail(err)
	}
	contacts, err := LoadContacts(s.contactsPath)
	if err != nil {
		return nil, s.fail(err)
	}

	merged := tabular.LeftJoin(support, contacts, domain.JoinKey, domain.ContactSuffix)
	records, err := domain.MergedRecords(merged)
	if err != nil {
		return nil, s.fail(err)
	}

	s.supportMod = supportMod
	s.contactsMod = contactsMod

	s.metrics.DatasetLoads.WithLabelValues("success").Inc()
	s.metrics.DatasetLoadDuration.Observe(time.Since(start).Seconds())
	s.metrics.DatasetRows.Set(float64(len(records)))
	s.logger.Info("dataset loaded",
		"rows", len(records),
		"support_file", s.supportPath,
		"contacts", contacts.Len(),
	)

	return &Dataset{Records: records, LoadedAt: s.clock.Now()}, nil
}

func (s *Store) fail(err error) error {
	outcome := "data_error"
	var decodeErr *tabular.DecodeError
	var schemaErr *tabular.SchemaError
	switch {
	case errors.As(err, &decodeErr):
		outcome = "decode_error"
	case errors.As(err, &schemaErr):
		outcome = "schema_error"
	}
	s.metrics.DatasetLoads.WithLabelValues(outcome).Inc()
	s.logger.Error("dataset load failed", "outcome", outcome, "error", err)

	return &LoadError{
		Err: err,
		Hints: []string{
			fmt.Sprintf("check that %q and %q exist", s.supportPath, s.contactsPath),
			"check that the first row of each file contains the column names",
			`check that the column "municipality" exists and is spelled exactly like this`,
		},
	}
}

// modTime returns a file's modification time, or the zero time when the
// file does not exist (the contacts file is allowed to be absent).
func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
