package models

// Stage is the step of the bill-splitting flow a session is in.
type Stage string

const (
	// StageReview means items are drafts being reviewed and edited.
	StageReview Stage = "review"

	// StageSplit means items are finalized and being assigned to participants.
	StageSplit Stage = "split"
)

// Session represents one bill being split.
// It stores the items, the roster and the tax/tip entered at finalize time.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string

	// OwnerID is the user who created the session.
	// Empty for anonymous sessions, which anyone holding the ID may access.
	OwnerID string

	// Title is the human-readable name. Auto-generated from the date when empty.
	Title string

	// Stage is the current step of the flow.
	Stage Stage

	// Items are the draft items in StageReview, or the finalized items
	// (including the synthetic Tax and Tip rows) in StageSplit.
	Items []Item

	// Participants is the roster, in the order people were added.
	Participants []Participant

	// Tax and Tip are the amounts entered when the items were finalized.
	Tax float64
	Tip float64

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}
