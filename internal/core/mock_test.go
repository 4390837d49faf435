package core

import (
	"context"
	"sync"

	"github.com/smartserve/backend/internal/core/model"
	"github.com/smartserve/backend/internal/store"
)

// MockStore is an in-memory store.Store for pipeline tests.
type MockStore struct {
	mu            sync.Mutex
	nextID        int64
	Tickets       map[int64]*model.Ticket
	Users         map[string]*model.User
	Verifications map[int64]*model.VerificationOutcome

	CreateTicketErr error
	StatusWrites    []model.TicketStatus
}

func NewMockStore() *MockStore {
	return &MockStore{
		Tickets:       make(map[int64]*model.Ticket),
		Users:         make(map[string]*model.User),
		Verifications: make(map[int64]*model.VerificationOutcome),
	}
}

func (m *MockStore) CreateTicket(_ context.Context, profile string, items []string) (*model.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateTicketErr != nil {
		return nil, m.CreateTicketErr
	}
	m.nextID++
	t := &model.Ticket{ID: m.nextID, Profile: profile, Items: items, Status: model.StatusCreated}
	m.Tickets[t.ID] = t
	return &model.Ticket{ID: t.ID, Profile: profile, Items: items, Status: t.Status}, nil
}

func (m *MockStore) GetTicket(_ context.Context, id int64) (*model.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Tickets[id]
	if !ok {
		return nil, store.ErrTicketNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MockStore) SetTicketStatus(_ context.Context, id int64, status model.TicketStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Tickets[id]
	if !ok {
		return store.ErrTicketNotFound
	}
	t.Status = status
	m.StatusWrites = append(m.StatusWrites, status)
	return nil
}

func (m *MockStore) SaveVerification(_ context.Context, outcome model.VerificationOutcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := outcome
	m.Verifications[outcome.TicketID] = &cp
	return nil
}

func (m *MockStore) GetVerification(_ context.Context, ticketID int64) (*model.VerificationOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.Verifications[ticketID]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (m *MockStore) CreateUser(_ context.Context, phone, name, profile string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Users[phone]; ok {
		return nil, store.ErrUserExists
	}
	u := &model.User{ID: int64(len(m.Users) + 1), Phone: phone, Name: name, Profile: profile}
	m.Users[phone] = u
	return u, nil
}

func (m *MockStore) GetUserByPhone(_ context.Context, phone string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.Users[phone]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, store.ErrUserNotFound
}

func (m *MockStore) Close() error { return nil }
