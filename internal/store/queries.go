package store

const (
	createTicketsTable = `
		CREATE TABLE IF NOT EXISTS tickets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			profile TEXT NOT NULL,
			items TEXT NOT NULL,
			status TEXT NOT NULL
		);
	`

	createUsersTable = `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			phone TEXT UNIQUE NOT NULL,
			name TEXT,
			profile TEXT
		);
	`

	createVerificationsTable = `
		CREATE TABLE IF NOT EXISTS verifications (
			ticket_id INTEGER PRIMARY KEY,
			outcome TEXT NOT NULL,
			FOREIGN KEY (ticket_id) REFERENCES tickets(id)
		);
	`

	insertTicketQuery = `INSERT INTO tickets (created_at, profile, items, status) VALUES (?, ?, ?, ?)`

	selectTicketQuery = `SELECT id, created_at, profile, items, status FROM tickets WHERE id = ?`

	updateTicketStatusQuery = `UPDATE tickets SET status = ? WHERE id = ?`

	upsertVerificationQuery = `
		INSERT INTO verifications (ticket_id, outcome) VALUES (?, ?)
		ON CONFLICT(ticket_id) DO UPDATE SET outcome = excluded.outcome
	`

	selectVerificationQuery = `SELECT outcome FROM verifications WHERE ticket_id = ?`

	insertUserQuery = `INSERT INTO users (phone, name, profile) VALUES (?, ?, ?)`

	selectUserByPhoneQuery = `SELECT id, phone, name, profile FROM users WHERE phone = ?`
)
