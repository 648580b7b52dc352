package suite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/dataset"
)

// Suite executes an ordered list of checks exactly once each against a
// shared run input. Checks are held in registration order; a check
// registered twice under the same identity keeps its first position and
// first result.
type Suite struct {
	// state is the current lifecycle phase.
	state State
	// checks holds registered checks in registration order.
	checks []check.Check
	// ids holds the identity of each check, parallel to checks.
	ids []check.Identity
	// index maps identity fingerprints to positions in checks.
	index map[string]int
	// results memoizes computed results by identity fingerprint.
	results *check.Context
	// logger is used for progress and error logging.
	logger *slog.Logger
}

// Option configures a Suite.
type Option func(*Suite)

// WithLogger sets a custom logger for the suite.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Suite) {
		s.logger = logger
	}
}

// New creates a suite in the UNINITIALIZED state with the given options
// applied.
func New(opts ...Option) *Suite {
	s := &Suite{
		state:   StateUninitialized,
		index:   make(map[string]int),
		results: check.NewContext(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// State returns the current lifecycle phase.
func (s *Suite) State() State {
	return s.state
}

// Reset clears all registered checks and memoized results and opens the
// suite for registration. Reset is legal in every state.
func (s *Suite) Reset() {
	s.checks = s.checks[:0]
	s.ids = s.ids[:0]
	s.index = make(map[string]int)
	s.results.Reset()
	s.state = StateReset
}

// Register adds a check and returns its position in execution order. A
// check whose identity is already registered is not added again; the
// position of the first registration is returned instead.
func (s *Suite) Register(c check.Check) (int, error) {
	if s.state != StateReset {
		return 0, fmt.Errorf("register in state %s: %w", s.state, ErrNotAcceptingChecks)
	}
	if c == nil {
		return 0, check.ErrNilCheck
	}

	id, err := check.IdentityOf(c)
	if err != nil {
		return 0, fmt.Errorf("failed to compute check identity: %w", err)
	}

	fp := id.Fingerprint()
	if pos, ok := s.index[fp]; ok {
		return pos, nil
	}

	pos := len(s.checks)
	s.checks = append(s.checks, c)
	s.ids = append(s.ids, id)
	s.index[fp] = pos
	return pos, nil
}

// RegisterAll registers checks in order and returns their positions.
func (s *Suite) RegisterAll(checks []check.Check) ([]int, error) {
	positions := make([]int, 0, len(checks))
	for _, c := range checks {
		pos, err := s.Register(c)
		if err != nil {
			return nil, err
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

// Verify checks that the run input satisfies the requirements of the
// protocol before any computation starts. A current dataset is mandatory;
// everything else is optional.
func (s *Suite) Verify(in *check.Input) error {
	if s.state != StateReset {
		return fmt.Errorf("verify in state %s: %w", s.state, ErrNotReset)
	}
	if in == nil || in.Current == nil {
		return check.ErrNoCurrentDataset
	}
	s.state = StateVerified
	return nil
}

// Run computes every registered check in registration order. Checks whose
// results are already memoized are skipped, so a result restored before the
// run is never recomputed. The first computation failure aborts the run
// with a *check.ComputationError carrying the failing check's identity,
// and the suite stays in the RUNNING state until the next Reset.
func (s *Suite) Run(ctx context.Context, in *check.Input) error {
	if s.state != StateVerified {
		return fmt.Errorf("run in state %s: %w", s.state, ErrNotVerified)
	}
	s.state = StateRunning
	s.logger.Info("starting suite run", slog.Int("checks", len(s.checks)))

	for i, c := range s.checks {
		select {
		case <-ctx.Done():
			return fmt.Errorf("suite run canceled: %w", ctx.Err())
		default:
		}

		id := s.ids[i]
		if s.results.Has(id) {
			s.logger.Debug("skipping memoized check",
				slog.String("check", id.String()),
				slog.Int("position", i))
			continue
		}

		s.logger.Info("computing check",
			slog.String("check", id.String()),
			slog.Int("position", i))

		result, err := c.Compute(in, s.results)
		if err != nil {
			s.logger.Error("check failed",
				slog.String("check", id.String()),
				slog.String("error", err.Error()))
			return &check.ComputationError{Check: id, Err: err}
		}
		if err := s.results.Put(id, result); err != nil {
			return &check.ComputationError{Check: id, Err: err}
		}

		s.logger.Debug("check completed", slog.String("check", id.String()))
	}

	s.state = StateComplete
	s.logger.Info("suite run complete", slog.Int("checks", len(s.checks)))
	return nil
}

// RestoreResult stores a precomputed result for a registered check, making
// the next Run skip its computation. Restoration is only legal in the RESET
// state, before verification.
func (s *Suite) RestoreResult(id check.Identity, result check.Result) error {
	if s.state != StateReset {
		return fmt.Errorf("restore in state %s: %w", s.state, ErrNotAcceptingChecks)
	}
	if _, ok := s.index[id.Fingerprint()]; !ok {
		return fmt.Errorf("restore %s: %w", id, check.ErrResultNotReady)
	}
	return s.results.Put(id, result)
}

// MarkComplete transitions a RESET suite whose every check already has a
// restored result directly to COMPLETE, bypassing verification and
// computation. It fails if any registered check lacks a result.
func (s *Suite) MarkComplete() error {
	if s.state != StateReset {
		return fmt.Errorf("mark complete in state %s: %w", s.state, ErrNotAcceptingChecks)
	}
	for _, id := range s.ids {
		if !s.results.Has(id) {
			return fmt.Errorf("%s: %w", id, ErrMissingResult)
		}
	}
	s.state = StateComplete
	return nil
}

// Len returns the number of registered checks.
func (s *Suite) Len() int {
	return len(s.checks)
}

// Checks returns the registered checks in execution order.
func (s *Suite) Checks() []check.Check {
	out := make([]check.Check, len(s.checks))
	copy(out, s.checks)
	return out
}

// Identities returns the identities of registered checks in execution
// order.
func (s *Suite) Identities() []check.Identity {
	out := make([]check.Identity, len(s.ids))
	copy(out, s.ids)
	return out
}

// Identity returns the identity of the check at the given position.
func (s *Suite) Identity(pos int) (check.Identity, error) {
	if pos < 0 || pos >= len(s.ids) {
		return check.Identity{}, fmt.Errorf("position %d out of range [0,%d)", pos, len(s.ids))
	}
	return s.ids[pos], nil
}

// IndexOf returns the position of the check with the given identity.
func (s *Suite) IndexOf(id check.Identity) (int, bool) {
	pos, ok := s.index[id.Fingerprint()]
	return pos, ok
}

// Result returns the computed result of the check at the given position.
// It fails with check.ErrResultNotReady if the check has not run yet.
func (s *Suite) Result(pos int) (check.Result, error) {
	if pos < 0 || pos >= len(s.ids) {
		return nil, fmt.Errorf("position %d out of range [0,%d)", pos, len(s.ids))
	}
	return s.results.Result(s.ids[pos])
}

// Context returns the shared memoization context. Checks receive the same
// context during Run, so results of earlier checks are readable by later
// ones.
func (s *Suite) Context() *check.Context {
	return s.results
}

// PlannedFeatures collects derived-column plans from every registered check
// implementing check.FeaturePlanner, in registration order. Plans with the
// same name and source appear once.
func (s *Suite) PlannedFeatures(def *dataset.Definition) []dataset.Feature {
	var plans []dataset.Feature
	seen := make(map[string]string)
	for _, c := range s.checks {
		planner, ok := c.(check.FeaturePlanner)
		if !ok {
			continue
		}
		for _, f := range planner.PlanFeatures(def) {
			if src, dup := seen[f.Name]; dup && src == f.Source {
				continue
			}
			seen[f.Name] = f.Source
			plans = append(plans, f)
		}
	}
	return plans
}
