package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/guttosm/blend-service/internal/catalog"
	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/engine"
	"github.com/guttosm/blend-service/internal/logger"
	"github.com/guttosm/blend-service/internal/metrics"
	"github.com/guttosm/blend-service/internal/service/cache"
)

const (
	defaultSessionCapacity = 10000
	defaultSessionTTL      = 2 * time.Hour
	defaultSessionShards   = 16
	sessionCacheName       = "sessions"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session IDs.
	ErrSessionNotFound = errors.New("formulation session not found")
	// ErrInvalidSlot is returned for slots outside the material slots of a formulation.
	ErrInvalidSlot = errors.New("slot outside the formulation")
	// ErrInvalidOptions is returned for out-of-range session options.
	ErrInvalidOptions = errors.New("invalid session options")
	// ErrEmptyEntryName is returned when a percentage is given without a material.
	ErrEmptyEntryName = errors.New("entry has no material name")
	// ErrGuideNotFound is returned when no guide exists for a beverage type and flavor.
	ErrGuideNotFound = errors.New("no guide for beverage type and flavor")
	// ErrEntryChanged is returned when an entry was edited while its estimate was pending.
	ErrEntryChanged = errors.New("entry changed while the estimate was pending")
	// ErrEstimatorUnavailable is returned when no estimation gateway is configured.
	ErrEstimatorUnavailable = fmt.Errorf("%w: estimator not configured", engine.ErrGatewayFailure)
)

// CatalogReader provides the current catalog snapshot.
type CatalogReader interface {
	Snapshot() *catalog.Snapshot
}

// Estimator requests attributes for materials the catalog and inference cannot resolve.
type Estimator interface {
	Enabled() bool
	Estimate(ctx context.Context, name string, hint model.Category) (model.Attributes, error)
}

// EntryInput is a requested change to one slot. Attributes are only used when
// the name is not in the catalog.
type EntryInput struct {
	Name       string            `json:"name"`
	Percentage float64           `json:"percentage"`
	Attributes *model.Attributes `json:"attributes,omitempty"`
}

// SlotInput is an EntryInput addressed to a slot.
type SlotInput struct {
	Slot int `json:"slot"`
	EntryInput
}

// GuideVariant selects which column of a stored guide is loaded.
type GuideVariant string

// Guide variants.
const (
	GuideRecommended GuideVariant = "recommended"
	GuideCase        GuideVariant = "case"
)

// GuideRequest selects a stored guide. An empty beverage type or flavor
// falls back to the session's own.
type GuideRequest struct {
	BeverageType string       `json:"beverage_type,omitempty"`
	Flavor       string       `json:"flavor,omitempty"`
	Variant      GuideVariant `json:"variant,omitempty"`
}

// ApplyResult is the session after merging validated candidates, plus the
// validation report of every candidate.
type ApplyResult struct {
	Session *SessionState          `json:"session"`
	Report  model.ValidationReport `json:"report"`
}

// EstimateResult is the session after an estimate was applied to one entry.
type EstimateResult struct {
	Session  *SessionState            `json:"session"`
	Source   model.Source             `json:"source"`
	Warnings []model.CandidateWarning `json:"warnings"`
}

// CompositionRequest is a stateless evaluation request.
type CompositionRequest struct {
	Options SessionOptions `json:"options"`
	Entries []SlotInput    `json:"entries"`
}

// CompositionResult is the outcome of a stateless evaluation.
type CompositionResult struct {
	Specification *model.Specification `json:"specification,omitempty"`
	Formulation   *model.Formulation   `json:"formulation"`
	Evaluation    engine.Evaluation    `json:"evaluation"`
}

// FormulationService manages formulation sessions and evaluates them.
type FormulationService interface {
	CreateSession(ctx context.Context, opts SessionOptions) (*SessionState, error)
	GetSession(ctx context.Context, id string) (*SessionState, error)
	DeleteSession(ctx context.Context, id string) error
	SetEntry(ctx context.Context, id string, slot int, in EntryInput) (*SessionState, error)
	ClearEntry(ctx context.Context, id string, slot int) (*SessionState, error)
	Reset(ctx context.Context, id string) (*SessionState, error)
	Evaluate(ctx context.Context, id string) (*engine.Evaluation, error)
	ApplyCandidates(ctx context.Context, id string, candidates []model.Candidate) (*ApplyResult, error)
	ApplyGuide(ctx context.Context, id string, req GuideRequest) (*ApplyResult, error)
	ReferenceLookup(ctx context.Context, id string, items []ReferenceItem) (*ReferenceResult, error)
	EstimateEntry(ctx context.Context, id string, slot int, hint model.Category) (*EstimateResult, error)
	EvaluateComposition(ctx context.Context, req CompositionRequest) (*CompositionResult, error)
}

// FormulationOption configures a FormulationServiceImpl.
type FormulationOption func(*FormulationServiceImpl)

// FormulationServiceImpl implements FormulationService over an in-memory
// session store. Each session is guarded by its own mutex; catalog snapshots
// are read without locking.
type FormulationServiceImpl struct {
	catalog    CatalogReader
	calculator *engine.Calculator
	resolver   *engine.Resolver
	estimator  Estimator
	sessions   cache.Cache[*Session]
	slots      int
	defaults   SessionOptions
}

// WithCalculator replaces the default calculator.
func WithCalculator(c *engine.Calculator) FormulationOption {
	return func(s *FormulationServiceImpl) {
		if c != nil {
			s.calculator = c
		}
	}
}

// WithResolver replaces the default inference resolver.
func WithResolver(r *engine.Resolver) FormulationOption {
	return func(s *FormulationServiceImpl) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithEstimator enables gateway estimation.
func WithEstimator(e Estimator) FormulationOption {
	return func(s *FormulationServiceImpl) {
		s.estimator = e
	}
}

// WithSessionStore replaces the default sharded session cache.
func WithSessionStore(c cache.Cache[*Session]) FormulationOption {
	return func(s *FormulationServiceImpl) {
		if c != nil {
			s.sessions = c
		}
	}
}

// WithSlots sets the formulation capacity, diluent slot included.
func WithSlots(n int) FormulationOption {
	return func(s *FormulationServiceImpl) {
		if n >= 2 {
			s.slots = n
		}
	}
}

// WithSessionDefaults sets the values used for options a caller leaves empty.
func WithSessionDefaults(opts SessionOptions) FormulationOption {
	return func(s *FormulationServiceImpl) {
		if opts.VolumeML > 0 {
			s.defaults.VolumeML = opts.VolumeML
		}
		if opts.PHMode != "" {
			s.defaults.PHMode = model.ParsePHMode(string(opts.PHMode))
		}
		if opts.ReferencePH > 0 && opts.ReferencePH <= 14 {
			s.defaults.ReferencePH = opts.ReferencePH
		}
	}
}

// NewFormulationService creates a formulation service reading materials from reader.
func NewFormulationService(reader CatalogReader, opts ...FormulationOption) *FormulationServiceImpl {
	s := &FormulationServiceImpl{
		catalog:    reader,
		calculator: engine.NewCalculator(),
		resolver:   engine.NewResolver(),
		slots:      model.DefaultSlots,
		defaults: SessionOptions{
			VolumeML:    engine.DefaultVolumeML,
			PHMode:      model.PHModeIon,
			ReferencePH: engine.DefaultReferencePH,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sessions == nil {
		s.sessions = cache.NewSharded[*Session](sessionCacheName, defaultSessionCapacity, defaultSessionTTL, defaultSessionShards)
	}
	return s
}

// Close stops the session store.
func (s *FormulationServiceImpl) Close() {
	s.sessions.Stop()
}

// CreateSession opens a session with an empty formulation whose last slot
// holds the catalog diluent.
func (s *FormulationServiceImpl) CreateSession(ctx context.Context, opts SessionOptions) (*SessionState, error) {
	opts, err := s.normalizeOptions(opts)
	if err != nil {
		return nil, err
	}

	snap := s.catalog.Snapshot()
	sess := newSession(uuid.NewString(), opts, model.NewFormulation(s.slots, snap.Diluent()))
	s.sessions.Set(sess.ID, sess)
	s.reportSessions()

	l := logger.ForSession(sess.ID)
	l.Info().
		Str("beverage_type", opts.BeverageType).
		Str("flavor", opts.Flavor).
		Msg("Formulation session created")

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.evaluateLocked(sess, snap), nil
}

// GetSession returns the session with a fresh evaluation.
func (s *FormulationServiceImpl) GetSession(ctx context.Context, id string) (*SessionState, error) {
	return s.apply(id, nil)
}

// DeleteSession discards a session.
func (s *FormulationServiceImpl) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.lookup(id); err != nil {
		return err
	}
	s.sessions.Invalidate(id)
	s.reportSessions()
	l := logger.ForSession(id)
	l.Info().Msg("Formulation session deleted")
	return nil
}

// SetEntry resolves the named material (catalog, then manual attributes, then
// name inference) and stores it in slot. Percentages outside [0, 100] are
// rejected before anything changes. An unresolvable name is kept with no
// attributes and surfaces as an issue on evaluation.
func (s *FormulationServiceImpl) SetEntry(ctx context.Context, id string, slot int, in EntryInput) (*SessionState, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(slot, in); err != nil {
		return nil, err
	}

	return s.apply(id, func(sess *Session, snap *catalog.Snapshot) error {
		entry, ok := sess.form.Entry(slot)
		if !ok {
			return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
		}
		if in.Name == "" {
			if in.Percentage != 0 {
				return &engine.EntryError{Slot: slot, Err: ErrEmptyEntryName}
			}
			clearEntry(entry, sess.form.Capacity())
			return nil
		}
		// Same material, new percentage: keep the resolved snapshot, which
		// may come from an earlier estimate.
		if entry.Name == in.Name && in.Attributes == nil && !entry.Attributes.IsEmpty() {
			entry.Percentage = in.Percentage
			return nil
		}

		*entry = s.resolve(snap, slot, sess.form.Capacity(), in)
		l := logger.ForEntry(sess.ID, slot, in.Name)
		l.Debug().
			Str("source", string(entry.Source)).
			Msg("Entry set")
		return nil
	})
}

// ClearEntry empties a slot.
func (s *FormulationServiceImpl) ClearEntry(ctx context.Context, id string, slot int) (*SessionState, error) {
	return s.apply(id, func(sess *Session, _ *catalog.Snapshot) error {
		entry, ok := sess.form.Entry(slot)
		if !ok {
			return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
		}
		clearEntry(entry, sess.form.Capacity())
		return nil
	})
}

// Reset empties every material slot.
func (s *FormulationServiceImpl) Reset(ctx context.Context, id string) (*SessionState, error) {
	return s.apply(id, func(sess *Session, _ *catalog.Snapshot) error {
		sess.form.Reset()
		return nil
	})
}

// Evaluate runs the calculator over the session's formulation.
func (s *FormulationServiceImpl) Evaluate(ctx context.Context, id string) (*engine.Evaluation, error) {
	state, err := s.apply(id, nil)
	if err != nil {
		return nil, err
	}
	return &state.Evaluation, nil
}

// ApplyCandidates validates externally sourced candidates and merges only the
// exact catalog matches into their slots. Everything else is reported as a
// warning with suggestions and leaves its slot untouched.
func (s *FormulationServiceImpl) ApplyCandidates(ctx context.Context, id string, candidates []model.Candidate) (*ApplyResult, error) {
	var report model.ValidationReport
	state, err := s.apply(id, func(sess *Session, snap *catalog.Snapshot) error {
		report = s.mergeCandidates(sess.form, snap, candidates)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ApplyResult{Session: state, Report: report}, nil
}

// ApplyGuide loads a stored guide into a cleared formulation. Guide names go
// through the same validation as any other candidate.
func (s *FormulationServiceImpl) ApplyGuide(ctx context.Context, id string, req GuideRequest) (*ApplyResult, error) {
	var report model.ValidationReport
	state, err := s.apply(id, func(sess *Session, snap *catalog.Snapshot) error {
		beverageType, flavor := req.BeverageType, req.Flavor
		if beverageType == "" {
			beverageType = sess.Options.BeverageType
		}
		if flavor == "" {
			flavor = sess.Options.Flavor
		}

		rows := snap.Guide(beverageType, flavor)
		if len(rows) == 0 {
			return fmt.Errorf("%w: %s/%s", ErrGuideNotFound, beverageType, flavor)
		}

		candidates := make([]model.Candidate, 0, len(rows))
		for _, row := range rows {
			if req.Variant == GuideCase {
				if row.CaseName == "" {
					continue
				}
				candidates = append(candidates, model.Candidate{Slot: row.Slot, Name: row.CaseName, Percentage: row.CasePercent})
				continue
			}
			candidates = append(candidates, row.Candidate())
		}

		sess.form.Reset()
		report = s.mergeCandidates(sess.form, snap, candidates)
		l := logger.ForSession(sess.ID)
		l.Info().
			Str("beverage_type", beverageType).
			Str("flavor", flavor).
			Int("accepted", len(report.Accepted)).
			Int("warnings", len(report.Warnings)).
			Msg("Guide applied")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ApplyResult{Session: state, Report: report}, nil
}

// EstimateEntry fills the attributes of the entry in slot. A name that turns
// out to be in the catalog takes the catalog attributes; otherwise the
// estimation gateway is asked. The gateway call runs without holding the
// session lock, and any failure leaves the entry unchanged.
func (s *FormulationServiceImpl) EstimateEntry(ctx context.Context, id string, slot int, hint model.Category) (*EstimateResult, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	entry, ok := sess.form.Entry(slot)
	var name string
	if ok {
		name = entry.Name
	}
	sess.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	if name == "" {
		return nil, &engine.EntryError{Slot: slot, Err: ErrEmptyEntryName}
	}

	report := engine.Validate([]model.Candidate{{Slot: slot, Name: name}}, s.catalog.Snapshot())

	var (
		attrs  model.Attributes
		source model.Source
	)
	if len(report.Accepted) == 1 {
		attrs, source = report.Accepted[0].Material.Attributes, model.SourceCatalog
	} else {
		if s.estimator == nil || !s.estimator.Enabled() {
			return nil, &engine.EntryError{Slot: slot, Name: name, Err: ErrEstimatorUnavailable}
		}
		if hint == model.CategoryUnknown {
			if inf := s.resolver.Infer(name); inf != nil {
				hint = inf.Category
			}
		}
		attrs, err = s.estimator.Estimate(ctx, name, hint)
		if err != nil {
			l := logger.ForEntry(id, slot, name)
			l.Warn().Err(err).Msg("Estimate rejected, entry unchanged")
			return nil, &engine.EntryError{Slot: slot, Name: name, Err: err}
		}
		source = model.SourceEstimated
	}

	state, err := s.apply(id, func(sess *Session, _ *catalog.Snapshot) error {
		entry, _ := sess.form.Entry(slot)
		if entry.Name != name {
			return &engine.EntryError{Slot: slot, Name: name, Err: ErrEntryChanged}
		}
		entry.Attributes = attrs.Clone()
		entry.Source = source
		entry.Inferred = false
		entry.Custom = source != model.SourceCatalog
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordMaterialResolution(string(source))

	return &EstimateResult{Session: state, Source: source, Warnings: report.Warnings}, nil
}

// EvaluateComposition evaluates a one-off composition without creating a session.
func (s *FormulationServiceImpl) EvaluateComposition(ctx context.Context, req CompositionRequest) (*CompositionResult, error) {
	opts, err := s.normalizeOptions(req.Options)
	if err != nil {
		return nil, err
	}

	snap := s.catalog.Snapshot()
	form := model.NewFormulation(s.slots, snap.Diluent())
	for _, in := range req.Entries {
		name := strings.TrimSpace(in.Name)
		in.Name = name
		if err := validateInput(in.Slot, in.EntryInput); err != nil {
			return nil, err
		}
		entry, ok := form.Entry(in.Slot)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, in.Slot)
		}
		if name == "" {
			if in.Percentage != 0 {
				return nil, &engine.EntryError{Slot: in.Slot, Err: ErrEmptyEntryName}
			}
			continue
		}
		*entry = s.resolve(snap, in.Slot, form.Capacity(), in.EntryInput)
	}

	spec := specificationFor(snap, opts.BeverageType)
	ev := s.evaluate(form, spec, opts)
	return &CompositionResult{Specification: spec, Formulation: form, Evaluation: ev}, nil
}

func (s *FormulationServiceImpl) lookup(id string) (*Session, error) {
	sess, ok := s.sessions.Get(id)
	if !ok || sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// apply runs fn under the session lock and returns the re-evaluated session.
// fn must return any error before it mutates the formulation.
func (s *FormulationServiceImpl) apply(id string, fn func(*Session, *catalog.Snapshot) error) (*SessionState, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	snap := s.catalog.Snapshot()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if fn != nil {
		if err := fn(sess, snap); err != nil {
			return nil, err
		}
		sess.touch()
	}
	return s.evaluateLocked(sess, snap), nil
}

func (s *FormulationServiceImpl) evaluateLocked(sess *Session, snap *catalog.Snapshot) *SessionState {
	spec := specificationFor(snap, sess.Options.BeverageType)
	ev := s.evaluate(sess.form, spec, sess.Options)
	return &SessionState{
		ID:            sess.ID,
		Options:       sess.Options,
		Specification: spec,
		Formulation:   sess.form.Clone(),
		Evaluation:    ev,
		CreatedAt:     sess.CreatedAt,
		UpdatedAt:     sess.updatedAt,
	}
}

func (s *FormulationServiceImpl) evaluate(form *model.Formulation, spec *model.Specification, opts SessionOptions) engine.Evaluation {
	start := time.Now()
	ev := s.calculator.Evaluate(form, spec, opts.params())
	outcome := "pass"
	if !ev.Compliance.Passed() {
		outcome = "fail"
	}
	metrics.RecordEvaluation(time.Since(start), outcome)
	return ev
}

// validateInput rejects out-of-range percentages and manual attributes before
// anything changes.
func validateInput(slot int, in EntryInput) error {
	if err := engine.ValidatePercentage(slot, in.Name, in.Percentage); err != nil {
		return err
	}
	if in.Attributes != nil {
		return engine.ValidateAttributes(slot, in.Name, *in.Attributes)
	}
	return nil
}

// resolve builds the entry for a non-empty name.
func (s *FormulationServiceImpl) resolve(snap *catalog.Snapshot, slot, capacity int, in EntryInput) model.CompositionEntry {
	entry := model.CompositionEntry{
		Slot:       slot,
		Name:       in.Name,
		Percentage: in.Percentage,
		Group:      model.GroupOf(slot, capacity),
	}

	if m, ok := snap.Material(in.Name); ok {
		entry.Attributes = m.Attributes
		entry.Source = model.SourceCatalog
	} else if in.Attributes != nil && !in.Attributes.IsEmpty() {
		attrs := in.Attributes.Clone()
		if inf := s.resolver.Infer(in.Name); inf != nil {
			attrs = attrs.Merge(inf.Attributes)
		}
		entry.Attributes = attrs
		entry.Source = model.SourceManual
		entry.Custom = true
	} else if inf := s.resolver.Infer(in.Name); inf != nil {
		entry.Attributes = inf.Attributes
		entry.Source = model.SourceInferred
		entry.Inferred = true
		entry.Custom = true
	} else {
		entry.Source = model.SourceUnresolved
		entry.Custom = true
	}

	metrics.RecordMaterialResolution(string(entry.Source))
	return entry
}

func (s *FormulationServiceImpl) mergeCandidates(form *model.Formulation, snap *catalog.Snapshot, candidates []model.Candidate) model.ValidationReport {
	report := engine.Validate(candidates, snap)

	accepted := make([]model.AcceptedCandidate, 0, len(report.Accepted))
	for _, a := range report.Accepted {
		c := a.Candidate
		entry, ok := form.Entry(c.Slot)
		if !ok {
			report.Warnings = append(report.Warnings, model.CandidateWarning{
				Candidate:   c,
				Suggestions: []string{},
				Message:     ErrInvalidSlot.Error(),
			})
			continue
		}
		if err := engine.ValidatePercentage(c.Slot, c.Name, c.Percentage); err != nil {
			report.Warnings = append(report.Warnings, model.CandidateWarning{
				Candidate:   c,
				Suggestions: []string{},
				Message:     err.Error(),
			})
			continue
		}

		*entry = model.CompositionEntry{
			Slot:       c.Slot,
			Name:       a.Material.Name,
			Percentage: c.Percentage,
			Attributes: a.Material.Attributes.Clone(),
			Source:     model.SourceCatalog,
			Group:      model.GroupOf(c.Slot, form.Capacity()),
		}
		metrics.RecordMaterialResolution(string(model.SourceCatalog))
		accepted = append(accepted, a)
	}
	report.Accepted = accepted
	return report
}

func (s *FormulationServiceImpl) normalizeOptions(opts SessionOptions) (SessionOptions, error) {
	opts.BeverageType = strings.TrimSpace(opts.BeverageType)
	opts.Flavor = strings.TrimSpace(opts.Flavor)

	switch opts.PHMode {
	case "":
		opts.PHMode = s.defaults.PHMode
	case model.PHModeIon, model.PHModeLinear:
	default:
		return opts, fmt.Errorf("%w: unknown pH mode %q", ErrInvalidOptions, opts.PHMode)
	}

	switch {
	case opts.ReferencePH == 0:
		opts.ReferencePH = s.defaults.ReferencePH
	case opts.ReferencePH < 0 || opts.ReferencePH > 14:
		return opts, fmt.Errorf("%w: reference pH %g outside (0, 14]", ErrInvalidOptions, opts.ReferencePH)
	}

	switch {
	case opts.VolumeML == 0:
		opts.VolumeML = s.defaults.VolumeML
	case opts.VolumeML < 0:
		return opts, fmt.Errorf("%w: negative volume %g", ErrInvalidOptions, opts.VolumeML)
	}

	if opts.CostTarget != nil && *opts.CostTarget < 0 {
		return opts, fmt.Errorf("%w: negative cost target", ErrInvalidOptions)
	}
	return opts, nil
}

func (s *FormulationServiceImpl) reportSessions() {
	m, ok := s.sessions.(interface{ Metrics() cache.Metrics })
	if !ok {
		return
	}
	stats := m.Metrics()
	metrics.SessionsActive.Set(float64(stats.Size))
	metrics.UpdateCacheMetrics(sessionCacheName, stats.Size, stats.Capacity)
}

func specificationFor(snap *catalog.Snapshot, beverageType string) *model.Specification {
	if beverageType == "" {
		return nil
	}
	spec, ok := snap.Specification(beverageType)
	if !ok {
		return nil
	}
	return &spec
}

func clearEntry(entry *model.CompositionEntry, capacity int) {
	*entry = model.CompositionEntry{Slot: entry.Slot, Group: model.GroupOf(entry.Slot, capacity)}
}
