package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/smartserve/backend/internal/core/model"
)

// SQLiteStore persists tickets, users and verification records in a
// single SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database '%s': %w", path, err)
	}

	// One verification event per ticket in normal flow; a single
	// writer connection sidesteps SQLITE_BUSY under request parallelism.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("Opened sqlite store at %s", path)
	return s, nil
}

func (s *SQLiteStore) init() error {
	for _, q := range []string{createTicketsTable, createUsersTable, createVerificationsTable} {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateTicket(ctx context.Context, profile string, items []string) (*model.Ticket, error) {
	createdAt := time.Now().UTC()
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ticket items: %w", err)
	}

	res, err := s.db.ExecContext(ctx, insertTicketQuery,
		createdAt.Format(time.RFC3339), profile, string(encoded), string(model.StatusCreated))
	if err != nil {
		return nil, fmt.Errorf("failed to insert ticket: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read ticket id: %w", err)
	}

	return &model.Ticket{
		ID:        id,
		CreatedAt: createdAt,
		Profile:   profile,
		Items:     items,
		Status:    model.StatusCreated,
	}, nil
}

func (s *SQLiteStore) GetTicket(ctx context.Context, id int64) (*model.Ticket, error) {
	var (
		t         model.Ticket
		createdAt string
		items     string
		status    string
	)
	err := s.db.QueryRowContext(ctx, selectTicketQuery, id).
		Scan(&t.ID, &createdAt, &t.Profile, &items, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ticket %d: %w", id, err)
	}

	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		t.CreatedAt = ts
	}
	if err := json.Unmarshal([]byte(items), &t.Items); err != nil {
		return nil, fmt.Errorf("failed to decode items for ticket %d: %w", id, err)
	}
	t.Status = model.TicketStatus(status)
	return &t, nil
}

func (s *SQLiteStore) SetTicketStatus(ctx context.Context, id int64, status model.TicketStatus) error {
	res, err := s.db.ExecContext(ctx, updateTicketStatusQuery, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update ticket %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrTicketNotFound
	}
	return nil
}

func (s *SQLiteStore) SaveVerification(ctx context.Context, outcome model.VerificationOutcome) error {
	encoded, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("failed to encode verification outcome: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, upsertVerificationQuery, outcome.TicketID, string(encoded)); err != nil {
		return fmt.Errorf("failed to save verification for ticket %d: %w", outcome.TicketID, err)
	}
	return nil
}

func (s *SQLiteStore) GetVerification(ctx context.Context, ticketID int64) (*model.VerificationOutcome, error) {
	var encoded string
	err := s.db.QueryRowContext(ctx, selectVerificationQuery, ticketID).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query verification for ticket %d: %w", ticketID, err)
	}
	var outcome model.VerificationOutcome
	if err := json.Unmarshal([]byte(encoded), &outcome); err != nil {
		return nil, fmt.Errorf("failed to decode verification for ticket %d: %w", ticketID, err)
	}
	return &outcome, nil
}

func (s *SQLiteStore) CreateUser(ctx context.Context, phone, name, profile string) (*model.User, error) {
	phone = strings.TrimSpace(phone)
	res, err := s.db.ExecContext(ctx, insertUserQuery, phone, name, profile)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read user id: %w", err)
	}
	return &model.User{ID: id, Phone: phone, Name: name, Profile: profile}, nil
}

func (s *SQLiteStore) GetUserByPhone(ctx context.Context, phone string) (*model.User, error) {
	var u model.User
	var name sql.NullString
	err := s.db.QueryRowContext(ctx, selectUserByPhoneQuery, strings.TrimSpace(phone)).
		Scan(&u.ID, &u.Phone, &name, &u.Profile)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	u.Name = name.String
	return &u, nil
}
