package ports

import (
	"context"

	"github.com/bhackerb/Leafs-Injury-Timetable-Roulette/internal/domain"
)

// RosterStore provides access to the team roster.
type RosterStore interface {
	Roster(ctx context.Context) (domain.Roster, error)
}
