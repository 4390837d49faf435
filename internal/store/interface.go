package store

import (
	"context"
	"errors"

	"github.com/smartserve/backend/internal/core/model"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("user already exists")
)

type Store interface {
	CreateTicket(ctx context.Context, profile string, items []string) (*model.Ticket, error)
	GetTicket(ctx context.Context, id int64) (*model.Ticket, error)
	SetTicketStatus(ctx context.Context, id int64, status model.TicketStatus) error

	SaveVerification(ctx context.Context, outcome model.VerificationOutcome) error
	GetVerification(ctx context.Context, ticketID int64) (*model.VerificationOutcome, error)

	CreateUser(ctx context.Context, phone, name, profile string) (*model.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*model.User, error)

	Close() error
}
