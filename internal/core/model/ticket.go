package model

import "time"

// TicketStatus is the fulfillment state of an order ticket.
type TicketStatus string

const (
	StatusCreated   TicketStatus = "created"
	StatusInKitchen TicketStatus = "in_kitchen"
	StatusVerified  TicketStatus = "verified"
	StatusMismatch  TicketStatus = "mismatch"
	StatusHeld      TicketStatus = "held"
	StatusReady     TicketStatus = "ready"
)

// Ticket is an order ticket. Created by order placement; only the
// verification matcher moves it through its status transitions.
type Ticket struct {
	ID        int64        `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Profile   string       `json:"profile"`
	Items     []string     `json:"items"`
	Status    TicketStatus `json:"status"`
}

// User is a phone-keyed account record.
type User struct {
	ID      int64  `json:"id"`
	Phone   string `json:"phone"`
	Name    string `json:"name"`
	Profile string `json:"profile"`
}
