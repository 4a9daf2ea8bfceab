// Package models defines the core domain models for Money Mate.
//
// # Models
//
//   - Item: a priced receipt line that can be shared among participants
//   - Participant: a person the bill is split between
//   - Session: one bill being reviewed and split, persisted between requests
//   - User: an optional registered account that owns sessions
//
// Relationships use ID strings rather than pointers. Items reference
// participants through Item.AssignedTo, and a session owns both lists.
//
// # Lifecycle
//
// A session starts in StageReview, where items are drafts that can be edited
// freely. Finalizing the items moves it to StageSplit; from then on the item
// list is fixed and only assignments and the roster change. Reopening the
// items moves it back to StageReview.
package models
