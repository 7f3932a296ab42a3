package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bhackerb/Leafs-Injury-Timetable-Roulette/internal/domain"
	"github.com/bhackerb/Leafs-Injury-Timetable-Roulette/internal/ports"
)

// defaultSubject seeds the prompt when the roster cannot be read.
// Roster problems must never fail a spin.
const defaultSubject = "a Toronto Maple Leafs skater"

// Session describes one accepted spin.
type Session struct {
	ID     int64
	Target float64
	// Done is closed once the spin has resolved, its report has been
	// stored, and the wheel is accepting spins again.
	Done <-chan struct{}
}

// Snapshot is a point-in-time view of the wheel for rendering.
type Snapshot struct {
	Phase      domain.Phase
	Rotation   float64
	Categories []domain.Category
	Report     *domain.Report
	SpinID     int64
}

// Roulette owns the rotation state, the spin phase, and the last
// report. Spins are strictly serialized: Spin is rejected unless the
// wheel is idle, so at most one session is ever in flight.
type Roulette struct {
	reporter ports.Reporter
	roster   ports.RosterStore
	rng      domain.RNG
	logger   *slog.Logger

	// spinDuration must match the animation duration the rendering
	// collaborator uses, since resolution is scheduled to fire when
	// the wheel visually stops.
	spinDuration time.Duration
	fetchTimeout time.Duration

	mu       sync.Mutex
	phase    domain.Phase
	rotation float64
	report   *domain.Report
	spinID   int64
}

func NewRoulette(reporter ports.Reporter, roster ports.RosterStore, rng domain.RNG, spinDuration, fetchTimeout time.Duration, logger *slog.Logger) *Roulette {
	return &Roulette{
		reporter:     reporter,
		roster:       roster,
		rng:          rng,
		logger:       logger,
		spinDuration: spinDuration,
		fetchTimeout: fetchTimeout,
		phase:        domain.PhaseIdle,
	}
}

// Spin starts a new spin. It returns domain.ErrSpinInProgress without
// touching any state if a session is already in flight; that check is
// the sole concurrency guard.
func (r *Roulette) Spin() (Session, error) {
	r.mu.Lock()
	if r.phase != domain.PhaseIdle {
		r.mu.Unlock()
		return Session{}, domain.ErrSpinInProgress
	}

	r.spinID++
	id := r.spinID
	r.rotation = domain.NextTarget(r.rotation, r.rng)
	target := r.rotation
	r.phase = domain.PhaseSpinning
	done := make(chan struct{})
	r.mu.Unlock()

	r.logger.Info("spin accepted", "spin_id", id, "target_rotation", target)

	time.AfterFunc(r.spinDuration, func() {
		r.resolve(id, target, done)
	})

	return Session{ID: id, Target: target, Done: done}, nil
}

// resolve fires when the wheel stops: it converts the stored rotation
// into a category, fetches the report, stores it, and reopens the
// wheel. The session id guards against a stale timer from a
// superseded session.
func (r *Roulette) resolve(id int64, target float64, done chan struct{}) {
	r.mu.Lock()
	if r.phase != domain.PhaseSpinning || r.spinID != id {
		r.mu.Unlock()
		return
	}
	r.phase = domain.PhaseFetchingOutcome
	r.mu.Unlock()

	idx := domain.Resolve(target, domain.SegmentCount)
	category := domain.CategoryAt(idx)
	report := r.fetchReport(category)

	r.mu.Lock()
	r.report = &report
	r.phase = domain.PhaseIdle
	r.mu.Unlock()
	close(done)

	r.logger.Info("spin resolved",
		"spin_id", id,
		"segment", idx,
		"category", category,
		"player", report.Player,
	)
}

// fetchReport never fails: any generator error or incomplete payload
// collapses into the canned fallback for the resolved category.
func (r *Roulette) fetchReport(category domain.Category) domain.Report {
	ctx, cancel := context.WithTimeout(context.Background(), r.fetchTimeout)
	defer cancel()

	out, err := r.reporter.Generate(ctx, ports.ReportInput{
		Category: string(category),
		Subject:  r.pickSubject(ctx),
	})
	if err != nil {
		r.logger.Warn("report generation failed, using fallback", "category", category, "error", err)
		return domain.FallbackReport(category)
	}

	report := domain.Report{
		Category:  category,
		Player:    out.Player,
		Diagnosis: out.Diagnosis,
		Timeline:  out.Timeline,
		Quote:     out.Quote,
		CapImpact: out.CapImpact,
	}
	if !report.Complete() {
		r.logger.Warn("generator returned incomplete report, using fallback", "category", category)
		return domain.FallbackReport(category)
	}
	return report
}

func (r *Roulette) pickSubject(ctx context.Context) string {
	roster, err := r.roster.Roster(ctx)
	if err != nil || len(roster.Players) == 0 {
		if err != nil {
			r.logger.Warn("roster unavailable, using default subject", "error", err)
		}
		return defaultSubject
	}
	return roster.Players[r.rng.Intn(len(roster.Players))].Name
}

// Snapshot returns the current wheel state for rendering.
func (r *Roulette) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		Phase:      r.phase,
		Rotation:   r.rotation,
		Categories: domain.Categories(),
		SpinID:     r.spinID,
	}
	if r.report != nil {
		rep := *r.report
		snap.Report = &rep
	}
	return snap
}

// SpinDuration is the shared animation/resolution delay.
func (r *Roulette) SpinDuration() time.Duration {
	return r.spinDuration
}
