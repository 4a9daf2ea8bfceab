// Package splitter holds the mutable roster and item assignments of a bill
// being split, and exposes the user-facing operations that change them.
//
// A Splitter is owned by a single request and is not safe for concurrent use.
package splitter

import (
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/moneymate/internal/calculator"
	"github.com/mmynk/moneymate/internal/models"
)

// DefaultParticipantName is the name of the participant every roster starts with.
const DefaultParticipantName = "You"

var (
	ErrItemNotFound        = errors.New("item not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrLastParticipant     = errors.New("at least one participant is required")
	ErrFixedAssignment     = errors.New("tax and tip are always split between everyone")
)

// Splitter tracks who shares which item.
type Splitter struct {
	items        []models.Item
	participants []models.Participant
}

// New creates a Splitter over a copy of items.
// An empty roster is seeded with a single "You" participant. Assignments to
// IDs outside the roster and duplicate assignments are dropped.
func New(items []models.Item, participants []models.Participant) *Splitter {
	s := &Splitter{}
	if len(participants) == 0 {
		s.participants = []models.Participant{{ID: uuid.New().String(), Name: DefaultParticipantName}}
	} else {
		s.participants = append([]models.Participant{}, participants...)
	}

	s.items = models.CloneItems(items)
	for i := range s.items {
		if s.items[i].Quantity < models.DefaultQuantity {
			s.items[i].Quantity = models.DefaultQuantity
		}
		s.items[i].AssignedTo = s.knownUnique(s.items[i].AssignedTo)
	}
	return s
}

// Items returns a copy of the items as they should be stored. Tax and tip rows
// keep whatever assignments they were given.
func (s *Splitter) Items() []models.Item {
	return models.CloneItems(s.items)
}

// NormalizedItems returns a copy of the items with tax and tip assigned to
// everyone, the form shown to users.
func (s *Splitter) NormalizedItems() []models.Item {
	return calculator.Normalize(s.items, s.participants)
}

// Participants returns a copy of the roster.
func (s *Splitter) Participants() []models.Participant {
	return append([]models.Participant{}, s.participants...)
}

// Summary computes the current per-person breakdown.
func (s *Splitter) Summary() calculator.Summary {
	return calculator.ComputeSummary(s.items, s.participants)
}

// AddParticipant appends a participant with a fresh ID.
// It returns false and changes nothing when name is blank.
func (s *Splitter) AddParticipant(name string) (models.Participant, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Participant{}, false
	}
	p := models.Participant{ID: uuid.New().String(), Name: name}
	s.participants = append(s.participants, p)
	return p, true
}

// RemoveParticipant removes a participant and every assignment referring to it.
func (s *Splitter) RemoveParticipant(id string) error {
	idx := s.participantIndex(id)
	if idx < 0 {
		return ErrParticipantNotFound
	}
	if len(s.participants) == 1 {
		return ErrLastParticipant
	}

	s.participants = slices.Delete(s.participants, idx, idx+1)
	for i := range s.items {
		s.items[i].AssignedTo = slices.DeleteFunc(s.items[i].AssignedTo, func(pid string) bool {
			return pid == id
		})
	}
	return nil
}

// ToggleAssignment adds the participant to the item, or removes them if
// already assigned. Tax and tip rows are rejected with ErrFixedAssignment.
func (s *Splitter) ToggleAssignment(itemID, participantID string) error {
	idx := s.itemIndex(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}
	if s.participantIndex(participantID) < 0 {
		return ErrParticipantNotFound
	}

	item := &s.items[idx]
	if calculator.IsTaxOrTip(item.Name) {
		return ErrFixedAssignment
	}

	if pos := slices.Index(item.AssignedTo, participantID); pos >= 0 {
		item.AssignedTo = slices.Delete(item.AssignedTo, pos, pos+1)
	} else {
		item.AssignedTo = append(item.AssignedTo, participantID)
	}
	return nil
}

// SplitEvenly assigns every item to every participant.
func (s *Splitter) SplitEvenly() {
	everyone := models.ParticipantIDs(s.participants)
	for i := range s.items {
		s.items[i].AssignedTo = append([]string{}, everyone...)
	}
}

func (s *Splitter) itemIndex(id string) int {
	return slices.IndexFunc(s.items, func(item models.Item) bool { return item.ID == id })
}

func (s *Splitter) participantIndex(id string) int {
	return slices.IndexFunc(s.participants, func(p models.Participant) bool { return p.ID == id })
}

func (s *Splitter) knownUnique(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if s.participantIndex(id) >= 0 && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
