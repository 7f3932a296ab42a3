package domain

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
	// Float64 returns a random float64 in [0.0, 1.0).
	Float64() float64
}

// Category is one injury outcome on the wheel.
type Category string

// categories is the fixed wheel layout. Order defines segment
// boundaries, clockwise from the pointer at the top, and must not
// change within a session.
var categories = [...]Category{
	"Upper-Body Injury",
	"Lower-Body Injury",
	"High-Ankle Sprain",
	"Groin Strain",
	"Back Spasms",
	"Concussion Protocol",
	"Illness",
	"Undisclosed",
}

// SegmentCount is the number of equal angular segments on the wheel.
const SegmentCount = len(categories)

// Categories returns the wheel's ordered category set.
func Categories() []Category {
	out := make([]Category, SegmentCount)
	copy(out, categories[:])
	return out
}

// CategoryAt returns the category occupying segment index i.
func CategoryAt(i int) Category {
	return categories[i]
}

// Phase is the spin machine's externally visible state.
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseSpinning        Phase = "spinning"
	PhaseFetchingOutcome Phase = "fetching_outcome"
)

// Report is the narrative payload for one resolved spin. Records are
// replaced wholesale on each resolution, never mutated in place.
type Report struct {
	Category  Category `json:"category"`
	Player    string   `json:"player"`
	Diagnosis string   `json:"diagnosis"`
	Timeline  string   `json:"timeline"`
	Quote     string   `json:"quote"`
	CapImpact string   `json:"cap_impact"`
}

// Complete reports whether every field is populated. A partially
// populated record is treated the same as a generation failure.
func (r Report) Complete() bool {
	return r.Category != "" &&
		r.Player != "" &&
		r.Diagnosis != "" &&
		r.Timeline != "" &&
		r.Quote != "" &&
		r.CapImpact != ""
}

// Player is one roster entry used to seed report subjects.
type Player struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Number   int    `json:"number"`
}

// Roster is a team's player list.
type Roster struct {
	Team    string   `json:"team"`
	Players []Player `json:"players"`
}
