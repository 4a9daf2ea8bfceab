package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/moneymate/internal/models"
	"github.com/mmynk/moneymate/internal/storage"
)

// CreateSession persists a new session with its items and participants.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt == 0 {
		session.CreatedAt = time.Now().Unix()
	}
	session.UpdatedAt = session.CreatedAt
	if session.Title == "" {
		session.Title = generateTitle(session.CreatedAt)
	}
	if session.Stage == "" {
		session.Stage = models.StageReview
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, owner_id, title, stage, tax, tip, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID, nullString(session.OwnerID), session.Title, string(session.Stage),
		session.Tax, session.Tip, session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	if err := insertChildren(ctx, tx, session); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID, including items, assignments and participants.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session := &models.Session{}
	var ownerID sql.NullString
	var stage string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, title, stage, tax, tip, created_at, updated_at
		 FROM sessions WHERE id = ?`,
		sessionID,
	).Scan(&session.ID, &ownerID, &session.Title, &stage, &session.Tax, &session.Tip,
		&session.CreatedAt, &session.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", sessionID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	session.OwnerID = ownerID.String
	session.Stage = models.Stage(stage)

	if session.Participants, err = s.loadParticipants(ctx, sessionID); err != nil {
		return nil, err
	}
	if session.Items, err = s.loadItems(ctx, sessionID); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateSession replaces the session row and all of its children.
func (s *SQLiteStore) UpdateSession(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE sessions SET title = ?, stage = ?, tax = ?, tip = ?, updated_at = ? WHERE id = ?`,
		session.Title, string(session.Stage), session.Tax, session.Tip, session.UpdatedAt, session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	} else if n == 0 {
		return fmt.Errorf("session %s: %w", session.ID, storage.ErrNotFound)
	}

	// Assignments cascade from items and participants.
	for _, table := range []string{"items", "participants"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE session_id = ?", session.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := insertChildren(ctx, tx, session); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteSession removes a session; items, participants and assignments cascade.
func (s *SQLiteStore) DeleteSession(ctx context.Context, sessionID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", sessionID, storage.ErrNotFound)
	}
	return nil
}

// ListSessionsByOwner returns all sessions owned by the user, newest first.
func (s *SQLiteStore) ListSessionsByOwner(ctx context.Context, ownerID string) ([]*models.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM sessions WHERE owner_id = ? ORDER BY updated_at DESC, created_at DESC",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	sessions := make([]*models.Session, 0, len(ids))
	for _, id := range ids {
		session, err := s.GetSession(ctx, id)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func insertChildren(ctx context.Context, tx *sql.Tx, session *models.Session) error {
	for i, p := range session.Participants {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO participants (session_id, id, name, position) VALUES (?, ?, ?, ?)",
			session.ID, p.ID, p.Name, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for i, item := range session.Items {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO items (session_id, id, name, price, quantity, position) VALUES (?, ?, ?, ?, ?, ?)",
			session.ID, item.ID, item.Name, item.Price, item.Quantity, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for j, participantID := range item.AssignedTo {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO item_assignments (session_id, item_id, participant_id, position) VALUES (?, ?, ?, ?)",
				session.ID, item.ID, participantID, j,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item assignment: %w", err)
			}
		}
	}
	return nil
}

func (s *SQLiteStore) loadParticipants(ctx context.Context, sessionID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM participants WHERE session_id = ? ORDER BY position",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

func (s *SQLiteStore) loadItems(ctx context.Context, sessionID string) ([]models.Item, error) {
	assignments, err := s.loadAssignments(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, price, quantity FROM items WHERE session_id = ? ORDER BY position",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.AssignedTo = assignments[item.ID]
		if item.AssignedTo == nil {
			item.AssignedTo = []string{}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// loadAssignments returns participant IDs per item ID, in assignment order.
func (s *SQLiteStore) loadAssignments(ctx context.Context, sessionID string) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT item_id, participant_id FROM item_assignments WHERE session_id = ? ORDER BY item_id, position",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get item assignments: %w", err)
	}
	defer rows.Close()

	assignments := make(map[string][]string)
	for rows.Next() {
		var itemID, participantID string
		if err := rows.Scan(&itemID, &participantID); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments[itemID] = append(assignments[itemID], participantID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}
	return assignments, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
