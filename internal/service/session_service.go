package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/moneymate/internal/editor"
	"github.com/mmynk/moneymate/internal/export"
	"github.com/mmynk/moneymate/internal/middleware"
	"github.com/mmynk/moneymate/internal/models"
	"github.com/mmynk/moneymate/internal/splitter"
	"github.com/mmynk/moneymate/internal/storage"
	"github.com/mmynk/moneymate/pkg/api"
)

// SessionService implements the Connect SessionService.
//
// Every mutating call loads the session, applies one editor or splitter
// operation and writes the whole session back.
type SessionService struct {
	store storage.Store
	now   func() time.Time

	// mu serializes read-modify-write cycles so concurrent edits are not lost.
	mu sync.Mutex
}

var _ api.SessionServiceHandler = (*SessionService)(nil)

// NewSessionService creates a new SessionService with the given storage backend.
func NewSessionService(store storage.Store) *SessionService {
	return &SessionService{store: store, now: time.Now}
}

// CreateSession starts a new bill in the review stage, optionally seeded
// with extracted items. The roster starts with "You".
func (s *SessionService) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.SessionResponse], error) {
	session := &models.Session{
		OwnerID:      middleware.GetUserID(ctx),
		Title:        strings.TrimSpace(req.Msg.Title),
		Stage:        models.StageReview,
		Items:        editor.Prepare(itemsFromAPI(req.Msg.Items)),
		Participants: splitter.New(nil, nil).Participants(),
	}
	for i := range session.Items {
		session.Items[i].AssignedTo = []string{}
	}

	if err := s.store.CreateSession(ctx, session); err != nil {
		slog.Error("Failed to create session", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Session created",
		"session_id", session.ID,
		"owner_id", session.OwnerID,
		"items_count", len(session.Items),
	)
	return connect.NewResponse(s.sessionResponse(session)), nil
}

// GetSession returns the session, with its summary once items are finalized.
func (s *SessionService) GetSession(ctx context.Context, req *connect.Request[api.GetSessionRequest]) (*connect.Response[api.SessionResponse], error) {
	session, err := s.load(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(s.sessionResponse(session)), nil
}

// DeleteSession discards a session. Used to start over.
func (s *SessionService) DeleteSession(ctx context.Context, req *connect.Request[api.DeleteSessionRequest]) (*connect.Response[api.DeleteSessionResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.load(ctx, req.Msg.SessionID); err != nil {
		return nil, err
	}
	if err := s.store.DeleteSession(ctx, req.Msg.SessionID); err != nil {
		slog.Error("Failed to delete session", "session_id", req.Msg.SessionID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Session deleted", "session_id", req.Msg.SessionID)
	return connect.NewResponse(&api.DeleteSessionResponse{}), nil
}

// ListSessions returns the signed-in user's sessions, most recent first.
func (s *SessionService) ListSessions(ctx context.Context, req *connect.Request[api.ListSessionsRequest]) (*connect.Response[api.ListSessionsResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, toConnectError(ErrSignInRequired)
	}

	sessions, err := s.store.ListSessionsByOwner(ctx, userID)
	if err != nil {
		slog.Error("Failed to list sessions", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Session, len(sessions))
	for i, session := range sessions {
		out[i] = sessionToAPI(session)
	}
	return connect.NewResponse(&api.ListSessionsResponse{Sessions: out}), nil
}

// AddItem appends a blank draft item.
func (s *SessionService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	var added models.Item
	session, err := s.update(ctx, req.Msg.SessionID, func(session *models.Session) error {
		if session.Stage != models.StageReview {
			return ErrItemsFinalized
		}
		session.Items, added = editor.AddItem(session.Items)
		return nil
	})
	if err != nil {
		return nil, err
	}

	item := itemToAPI(added)
	return connect.NewResponse(&api.AddItemResponse{Session: sessionToAPI(session), Item: &item}), nil
}

// UpdateItem edits a draft item's name, price or quantity.
func (s *SessionService) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.SessionResponse], error) {
	patch := editor.Patch{Name: req.Msg.Name, Price: req.Msg.Price, Quantity: req.Msg.Quantity}
	return s.mutate(ctx, req.Msg.SessionID, func(session *models.Session) (err error) {
		if session.Stage != models.StageReview {
			return ErrItemsFinalized
		}
		session.Items, err = editor.UpdateItem(session.Items, req.Msg.ItemID, patch)
		return err
	})
}

// DeleteItem removes a draft item.
func (s *SessionService) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.SessionResponse], error) {
	return s.mutate(ctx, req.Msg.SessionID, func(session *models.Session) (err error) {
		if session.Stage != models.StageReview {
			return ErrItemsFinalized
		}
		session.Items, err = editor.DeleteItem(session.Items, req.Msg.ItemID)
		return err
	})
}

// FinalizeItems validates the drafts, appends Tax and Tip, and moves the
// session to the split stage.
func (s *SessionService) FinalizeItems(ctx context.Context, req *connect.Request[api.FinalizeItemsRequest]) (*connect.Response[api.SessionResponse], error) {
	return s.mutate(ctx, req.Msg.SessionID, func(session *models.Session) error {
		if session.Stage != models.StageReview {
			return ErrItemsFinalized
		}
		final, err := editor.FinalizeItems(session.Items, req.Msg.Tax, req.Msg.Tip)
		if err != nil {
			return err
		}
		sp := splitter.New(final, session.Participants)
		session.Items = sp.Items()
		session.Participants = sp.Participants()
		session.Tax = req.Msg.Tax
		session.Tip = req.Msg.Tip
		session.Stage = models.StageSplit
		return nil
	})
}

// ReopenItems moves a split session back to review. Tax and Tip rows are
// removed and assignments cleared; the entered amounts are kept.
func (s *SessionService) ReopenItems(ctx context.Context, req *connect.Request[api.ReopenItemsRequest]) (*connect.Response[api.SessionResponse], error) {
	return s.mutate(ctx, req.Msg.SessionID, func(session *models.Session) error {
		if session.Stage != models.StageSplit {
			return ErrItemsNotFinal
		}
		session.Items = editor.StripSynthetic(session.Items)
		session.Stage = models.StageReview
		return nil
	})
}

// AddParticipant adds a person to the roster. A blank name changes nothing
// and reports Added false.
func (s *SessionService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}

	sp := splitter.New(session.Items, session.Participants)
	participant, added := sp.AddParticipant(req.Msg.Name)
	if !added {
		resp := s.sessionResponse(session)
		return connect.NewResponse(&api.AddParticipantResponse{Session: resp.Session, Summary: resp.Summary}), nil
	}

	applyRoster(session, sp)
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	slog.Info("Participant added", "session_id", session.ID, "participant_id", participant.ID)
	resp := s.sessionResponse(session)
	p := participantToAPI(participant)
	return connect.NewResponse(&api.AddParticipantResponse{
		Session:     resp.Session,
		Summary:     resp.Summary,
		Participant: &p,
		Added:       true,
	}), nil
}

// RemoveParticipant removes a person and all of their assignments.
func (s *SessionService) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.SessionResponse], error) {
	return s.mutate(ctx, req.Msg.SessionID, func(session *models.Session) error {
		sp := splitter.New(session.Items, session.Participants)
		if err := sp.RemoveParticipant(req.Msg.ParticipantID); err != nil {
			return err
		}
		applyRoster(session, sp)
		return nil
	})
}

// ToggleAssignment adds or removes a person from an item.
func (s *SessionService) ToggleAssignment(ctx context.Context, req *connect.Request[api.ToggleAssignmentRequest]) (*connect.Response[api.SessionResponse], error) {
	return s.mutate(ctx, req.Msg.SessionID, func(session *models.Session) error {
		if session.Stage != models.StageSplit {
			return ErrItemsNotFinal
		}
		sp := splitter.New(session.Items, session.Participants)
		if err := sp.ToggleAssignment(req.Msg.ItemID, req.Msg.ParticipantID); err != nil {
			return err
		}
		session.Items = sp.Items()
		return nil
	})
}

// SplitEvenly assigns every item to everyone.
func (s *SessionService) SplitEvenly(ctx context.Context, req *connect.Request[api.SplitEvenlyRequest]) (*connect.Response[api.SessionResponse], error) {
	return s.mutate(ctx, req.Msg.SessionID, func(session *models.Session) error {
		if session.Stage != models.StageSplit {
			return ErrItemsNotFinal
		}
		sp := splitter.New(session.Items, session.Participants)
		sp.SplitEvenly()
		session.Items = sp.Items()
		return nil
	})
}

// GetSummary returns what everyone owes and the shareable text version.
func (s *SessionService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	session, err := s.load(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	if session.Stage != models.StageSplit {
		return nil, toConnectError(ErrItemsNotFinal)
	}

	summary := splitter.New(session.Items, session.Participants).Summary()
	return connect.NewResponse(&api.GetSummaryResponse{
		Summary: summaryToAPI(summary),
		Text:    export.Text(summary, s.now()),
	}), nil
}

// applyRoster copies the splitter's roster back. Finalized items pick up the
// new assignments too; drafts carry none.
func applyRoster(session *models.Session, sp *splitter.Splitter) {
	session.Participants = sp.Participants()
	if session.Stage == models.StageSplit {
		session.Items = sp.Items()
	}
}

// load fetches a session the caller may access. Anonymous sessions are
// reachable by ID; owned ones only by their owner.
func (s *SessionService) load(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, toConnectError(ErrMissingSessionID)
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		slog.Warn("Failed to load session", "session_id", sessionID, "error", err)
		return nil, toConnectError(err)
	}

	if session.OwnerID != "" && session.OwnerID != middleware.GetUserID(ctx) {
		slog.Warn("Session access denied",
			"session_id", sessionID,
			"user_id", middleware.GetUserID(ctx),
		)
		return nil, toConnectError(ErrNotSessionOwner)
	}
	return session, nil
}

func (s *SessionService) save(ctx context.Context, session *models.Session) error {
	if err := s.store.UpdateSession(ctx, session); err != nil {
		slog.Error("Failed to save session", "session_id", session.ID, "error", err)
		return toConnectError(err)
	}
	return nil
}

// update runs fn against the stored session and saves the result.
// Nothing is saved when fn fails.
func (s *SessionService) update(ctx context.Context, sessionID string, fn func(*models.Session) error) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		slog.Debug("Session change rejected", "session_id", sessionID, "error", err)
		return nil, toConnectError(err)
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) mutate(ctx context.Context, sessionID string, fn func(*models.Session) error) (*connect.Response[api.SessionResponse], error) {
	session, err := s.update(ctx, sessionID, fn)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(s.sessionResponse(session)), nil
}

func (s *SessionService) sessionResponse(session *models.Session) *api.SessionResponse {
	resp := &api.SessionResponse{Session: sessionToAPI(session)}
	if session.Stage == models.StageSplit {
		resp.Summary = summaryToAPI(splitter.New(session.Items, session.Participants).Summary())
	}
	return resp
}
