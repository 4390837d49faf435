package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartserve/backend/internal/core/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTicketLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ticket, err := s.CreateTicket(ctx, "returning", []string{"burger", "fries"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCreated, ticket.Status)
	assert.NotZero(t, ticket.ID)

	require.NoError(t, s.SetTicketStatus(ctx, ticket.ID, model.StatusInKitchen))

	got, err := s.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInKitchen, got.Status)
	assert.Equal(t, []string{"burger", "fries"}, got.Items)
	assert.Equal(t, "returning", got.Profile)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetTicket_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetTicket(context.Background(), 999)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestSetTicketStatus_NotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.SetTicketStatus(context.Background(), 999, model.StatusVerified)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestVerificationRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ticket, err := s.CreateTicket(ctx, "returning", []string{"burger"})
	require.NoError(t, err)

	got, err := s.GetVerification(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "no record before the first verification")

	outcome := model.VerificationOutcome{
		TicketID: ticket.ID,
		Expected: []string{"burger"},
		Detected: []string{"burger", "cola"},
		Missing:  []string{},
		Extra:    []string{"cola"},
		Status:   model.StatusMismatch,
	}
	require.NoError(t, s.SaveVerification(ctx, outcome))

	got, err = s.GetVerification(ctx, ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, outcome, *got)

	// A later verification overwrites the record.
	outcome.Status = model.StatusVerified
	outcome.Extra = []string{}
	require.NoError(t, s.SaveVerification(ctx, outcome))

	got, err = s.GetVerification(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusVerified, got.Status)
}

func TestUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, " 555-0100 ", "Alex", "in_store")
	require.NoError(t, err)
	assert.Equal(t, "555-0100", u.Phone, "phone is trimmed")

	got, err := s.GetUserByPhone(ctx, "555-0100")
	require.NoError(t, err)
	assert.Equal(t, "Alex", got.Name)
	assert.Equal(t, "in_store", got.Profile)

	_, err = s.CreateUser(ctx, "555-0100", "Other", "in_store")
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = s.GetUserByPhone(ctx, "555-9999")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
