package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/moneymate/internal/models"
	"github.com/mmynk/moneymate/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleSession() *models.Session {
	return &models.Session{
		Stage: models.StageSplit,
		Participants: []models.Participant{
			{ID: "p-you", Name: "You"},
			{ID: "p-alice", Name: "Alice"},
		},
		Items: []models.Item{
			{ID: "item-1", Name: "Burger", Price: 12, Quantity: 1, AssignedTo: []string{"p-alice", "p-you"}},
			{ID: "item-2", Name: "Fries", Price: 4, Quantity: 2, AssignedTo: []string{}},
			{ID: "tax", Name: "Tax", Price: 2, Quantity: 1, AssignedTo: []string{}},
		},
		Tax: 2,
	}
}

func TestSQLiteStore_CreateSessionFillsDefaults(t *testing.T) {
	store := newTestStore(t)
	session := &models.Session{Participants: []models.Participant{{ID: "p1", Name: "You"}}}

	require.NoError(t, store.CreateSession(context.Background(), session))

	assert.NotEmpty(t, session.ID)
	assert.NotZero(t, session.CreatedAt)
	assert.Equal(t, session.CreatedAt, session.UpdatedAt)
	assert.Contains(t, session.Title, "Bill - ")
	assert.Equal(t, models.StageReview, session.Stage)
}

func TestSQLiteStore_GetSessionRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	original := sampleSession()
	original.Title = "Dinner"
	require.NoError(t, store.CreateSession(ctx, original))

	got, err := store.GetSession(ctx, original.ID)
	require.NoError(t, err)

	assert.Equal(t, "Dinner", got.Title)
	assert.Equal(t, models.StageSplit, got.Stage)
	assert.Empty(t, got.OwnerID)
	assert.Equal(t, 2.0, got.Tax)
	assert.Equal(t, original.Participants, got.Participants)
	require.Len(t, got.Items, 3)
	assert.Equal(t, original.Items, got.Items)
}

func TestSQLiteStore_GetSessionNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSQLiteStore_UpdateSessionReplacesChildren(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	session := sampleSession()
	require.NoError(t, store.CreateSession(ctx, session))

	session.Stage = models.StageReview
	session.Tax = 0
	session.Participants = session.Participants[:1]
	session.Items = []models.Item{
		{ID: "item-1", Name: "Burger", Price: 13.5, Quantity: 3, AssignedTo: []string{"p-you"}},
	}
	require.NoError(t, store.UpdateSession(ctx, session))

	got, err := store.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageReview, got.Stage)
	assert.Zero(t, got.Tax)
	assert.Equal(t, []models.Participant{{ID: "p-you", Name: "You"}}, got.Participants)
	assert.Equal(t, session.Items, got.Items)
}

func TestSQLiteStore_UpdateSessionNotFound(t *testing.T) {
	store := newTestStore(t)
	session := sampleSession()
	session.ID = "missing"

	err := store.UpdateSession(context.Background(), session)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSQLiteStore_DeleteSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	session := sampleSession()
	require.NoError(t, store.CreateSession(ctx, session))

	require.NoError(t, store.DeleteSession(ctx, session.ID))

	_, err := store.GetSession(ctx, session.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, store.DeleteSession(ctx, session.ID), storage.ErrNotFound)
}

func TestSQLiteStore_ListSessionsByOwner(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := models.NewUser("alice@example.com", "Alice", "hash")
	bob := models.NewUser("bob@example.com", "Bob", "hash")
	require.NoError(t, store.CreateUser(ctx, alice))
	require.NoError(t, store.CreateUser(ctx, bob))

	first := sampleSession()
	first.OwnerID = alice.ID
	first.Title = "First"
	first.CreatedAt = 1000
	second := sampleSession()
	second.OwnerID = alice.ID
	second.Title = "Second"
	second.CreatedAt = 2000
	other := sampleSession()
	other.OwnerID = bob.ID
	anonymous := sampleSession()

	for _, s := range []*models.Session{first, second, other, anonymous} {
		require.NoError(t, store.CreateSession(ctx, s))
	}

	sessions, err := store.ListSessionsByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "Second", sessions[0].Title)
	assert.Equal(t, "First", sessions[1].Title)
	assert.Len(t, sessions[0].Items, 3)

	none, err := store.ListSessionsByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := models.NewUser("carol@example.com", "Carol", "secret-hash")
	require.NoError(t, store.CreateUser(ctx, user))

	byEmail, err := store.GetUserByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "Carol", byEmail.DisplayName)
	assert.Equal(t, "secret-hash", byEmail.PasswordHash)

	byID, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", byID.Email)

	_, err = store.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	duplicate := models.NewUser("carol@example.com", "Other", "hash")
	assert.Error(t, store.CreateUser(ctx, duplicate))
}

func TestSQLiteStore_ReopenRunsMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	store, err := New(path)
	require.NoError(t, err)
	session := sampleSession()
	require.NoError(t, store.CreateSession(context.Background(), session))
	require.NoError(t, store.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
}
