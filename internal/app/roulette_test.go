package app_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bhackerb/Leafs-Injury-Timetable-Roulette/internal/app"
	"github.com/bhackerb/Leafs-Injury-Timetable-Roulette/internal/domain"
	"github.com/bhackerb/Leafs-Injury-Timetable-Roulette/internal/ports"
)

type mockReporter struct {
	out   ports.ReportOutput
	err   error
	calls atomic.Int64
	last  atomic.Pointer[ports.ReportInput]
	block chan struct{}
}

func (m *mockReporter) Generate(ctx context.Context, in ports.ReportInput) (ports.ReportOutput, error) {
	m.calls.Add(1)
	m.last.Store(&in)
	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return ports.ReportOutput{}, ctx.Err()
		}
	}
	return m.out, m.err
}

type mockRoster struct {
	roster domain.Roster
	err    error
}

func (m *mockRoster) Roster(_ context.Context) (domain.Roster, error) {
	return m.roster, m.err
}

// fixedRNG always draws the minimum turn count and a fixed offset.
type fixedRNG struct{ offset float64 }

func (r fixedRNG) Intn(_ int) int   { return 0 }
func (r fixedRNG) Float64() float64 { return r.offset }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRoster() domain.Roster {
	return domain.Roster{
		Team: "Toronto Maple Leafs",
		Players: []domain.Player{
			{Name: "Auston Matthews", Position: "C", Number: 34},
			{Name: "Morgan Rielly", Position: "D", Number: 44},
		},
	}
}

func goodOutput() ports.ReportOutput {
	return ports.ReportOutput{
		Player:    "Auston Matthews",
		Diagnosis: "mild case of lower-body",
		Timeline:  "out 2-4 weeks",
		Quote:     "it is what it is",
		CapImpact: "none, somehow",
	}
}

func waitDone(t *testing.T, s app.Session) {
	t.Helper()
	select {
	case <-s.Done:
	case <-time.After(2 * time.Second):
		t.Fatal("spin did not resolve in time")
	}
}

func TestSpin_ResolvesAndStoresReport(t *testing.T) {
	reporter := &mockReporter{out: goodOutput()}
	// Offset 160/360: target 5*360+160, effective angle 200, index 4.
	r := app.NewRoulette(reporter, &mockRoster{roster: testRoster()}, fixedRNG{offset: 160.0 / 360.0}, time.Millisecond, time.Second, testLogger())

	sess, err := r.Spin()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Target <= 0 {
		t.Fatalf("target rotation not set: %v", sess.Target)
	}
	waitDone(t, sess)

	snap := r.Snapshot()
	if snap.Phase != domain.PhaseIdle {
		t.Errorf("phase = %q, want idle", snap.Phase)
	}
	if snap.Rotation != sess.Target {
		t.Errorf("rotation = %v, want %v", snap.Rotation, sess.Target)
	}
	if snap.Report == nil {
		t.Fatal("no report stored")
	}

	wantCategory := domain.CategoryAt(4)
	want := domain.Report{
		Category:  wantCategory,
		Player:    "Auston Matthews",
		Diagnosis: "mild case of lower-body",
		Timeline:  "out 2-4 weeks",
		Quote:     "it is what it is",
		CapImpact: "none, somehow",
	}
	if diff := cmp.Diff(want, *snap.Report); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}

	if got := reporter.calls.Load(); got != 1 {
		t.Errorf("reporter called %d times, want 1", got)
	}
	in := reporter.last.Load()
	if in.Category != string(wantCategory) {
		t.Errorf("reporter got category %q, want %q", in.Category, wantCategory)
	}
	if in.Subject != "Auston Matthews" {
		t.Errorf("reporter got subject %q", in.Subject)
	}
}

func TestSpin_RejectedWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	reporter := &mockReporter{out: goodOutput(), block: release}
	r := app.NewRoulette(reporter, &mockRoster{roster: testRoster()}, fixedRNG{offset: 0.5}, time.Millisecond, time.Second, testLogger())

	first, err := r.Spin()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// While spinning or fetching, further spins are no-ops.
	for i := 0; i < 3; i++ {
		if _, err := r.Spin(); !errors.Is(err, domain.ErrSpinInProgress) {
			t.Fatalf("concurrent spin: got err %v, want ErrSpinInProgress", err)
		}
	}
	if snap := r.Snapshot(); snap.Rotation != first.Target {
		t.Errorf("rejected spin mutated rotation: %v -> %v", first.Target, snap.Rotation)
	}

	close(release)
	waitDone(t, first)

	if got := reporter.calls.Load(); got != 1 {
		t.Errorf("reporter called %d times, want 1", got)
	}

	// Sessions are serialized: a new spin is accepted only after the
	// previous one fully settles.
	second, err := r.Spin()
	if err != nil {
		t.Fatalf("spin after settle: %v", err)
	}
	if second.ID != first.ID+1 {
		t.Errorf("session id = %d, want %d", second.ID, first.ID+1)
	}
	if second.Target <= first.Target {
		t.Errorf("rotation not monotonic: %v then %v", first.Target, second.Target)
	}
	waitDone(t, second)
}

func TestSpin_FallbackOnGeneratorError(t *testing.T) {
	reporter := &mockReporter{err: domain.ErrUpstreamLLM}
	r := app.NewRoulette(reporter, &mockRoster{roster: testRoster()}, fixedRNG{offset: 160.0 / 360.0}, time.Millisecond, time.Second, testLogger())

	sess, err := r.Spin()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitDone(t, sess)

	snap := r.Snapshot()
	if snap.Phase != domain.PhaseIdle {
		t.Errorf("phase = %q, want idle", snap.Phase)
	}
	if snap.Report == nil {
		t.Fatal("no report stored")
	}

	want := domain.FallbackReport(domain.CategoryAt(4))
	if diff := cmp.Diff(want, *snap.Report); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
	if !snap.Report.Complete() {
		t.Error("fallback report has empty fields")
	}
}

func TestSpin_FallbackOnIncompleteReport(t *testing.T) {
	out := goodOutput()
	out.CapImpact = ""
	reporter := &mockReporter{out: out}
	r := app.NewRoulette(reporter, &mockRoster{roster: testRoster()}, fixedRNG{offset: 0}, time.Millisecond, time.Second, testLogger())

	sess, err := r.Spin()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitDone(t, sess)

	snap := r.Snapshot()
	if snap.Report == nil {
		t.Fatal("no report stored")
	}
	want := domain.FallbackReport(snap.Report.Category)
	if diff := cmp.Diff(want, *snap.Report); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestSpin_FetchTimeoutFallsBack(t *testing.T) {
	// Reporter blocks until its context expires.
	reporter := &mockReporter{out: goodOutput(), block: make(chan struct{})}
	r := app.NewRoulette(reporter, &mockRoster{roster: testRoster()}, fixedRNG{offset: 0.25}, time.Millisecond, 10*time.Millisecond, testLogger())

	sess, err := r.Spin()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitDone(t, sess)

	snap := r.Snapshot()
	if snap.Phase != domain.PhaseIdle {
		t.Errorf("phase = %q, want idle after timeout", snap.Phase)
	}
	if snap.Report == nil || !snap.Report.Complete() {
		t.Fatalf("expected complete fallback report, got %+v", snap.Report)
	}
}

func TestSpin_RosterFailureUsesDefaultSubject(t *testing.T) {
	reporter := &mockReporter{out: goodOutput()}
	r := app.NewRoulette(reporter, &mockRoster{err: domain.ErrEmptyRoster}, fixedRNG{offset: 0.5}, time.Millisecond, time.Second, testLogger())

	sess, err := r.Spin()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitDone(t, sess)

	in := reporter.last.Load()
	if in == nil {
		t.Fatal("reporter never called")
	}
	if in.Subject == "" {
		t.Error("subject is empty; roster failure must not leak into the prompt")
	}
	if snap := r.Snapshot(); snap.Report == nil {
		t.Error("roster failure must not fail the spin")
	}
}

func TestSnapshot_InitialState(t *testing.T) {
	r := app.NewRoulette(&mockReporter{}, &mockRoster{}, fixedRNG{}, time.Millisecond, time.Second, testLogger())

	snap := r.Snapshot()
	if snap.Phase != domain.PhaseIdle {
		t.Errorf("initial phase = %q, want idle", snap.Phase)
	}
	if snap.Rotation != 0 {
		t.Errorf("initial rotation = %v, want 0", snap.Rotation)
	}
	if snap.Report != nil {
		t.Errorf("initial report = %+v, want nil", snap.Report)
	}
	if diff := cmp.Diff(domain.Categories(), snap.Categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
}
