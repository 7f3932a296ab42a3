package roster

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/bhackerb/Leafs-Injury-Timetable-Roulette/internal/domain"
)

//go:embed data/leafs.json
var rosterFS embed.FS

const rosterFile = "data/leafs.json"

// EmbeddedStore loads the roster from an embedded JSON file.
type EmbeddedStore struct {
	once   sync.Once
	roster domain.Roster
	err    error
}

func NewEmbeddedStore() *EmbeddedStore {
	return &EmbeddedStore{}
}

func (s *EmbeddedStore) init() {
	raw, err := rosterFS.ReadFile(rosterFile)
	if err != nil {
		s.err = fmt.Errorf("read embedded roster: %w", err)
		return
	}
	var r domain.Roster
	if err := json.Unmarshal(raw, &r); err != nil {
		s.err = fmt.Errorf("parse embedded roster: %w", err)
		return
	}
	if len(r.Players) == 0 {
		s.err = domain.ErrEmptyRoster
		return
	}
	s.roster = r
}

func (s *EmbeddedStore) Roster(_ context.Context) (domain.Roster, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return domain.Roster{}, s.err
	}
	return s.roster, nil
}
