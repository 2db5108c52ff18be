// Package accounts is the login-phase account/session store, adapted from
// the teacher's internal/database: same database/sql + go-sql-driver/mysql
// shape (DSN built with fmt.Sprintf, db.Ping on open, %w-wrapped errors),
// generalized from JX2's username/password login to the block-world
// protocol's username/UUID login (LoginStart, spec.md 4.4).
package accounts

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/meshbound/blockproto/internal/config"
)

// Account is one registered player.
type Account struct {
	ID       int64
	Username string
	UUID     string
	Banned   bool
}

// Store wraps the account/session MySQL connection.
type Store struct {
	db *sql.DB
}

// Open connects to the account database described by cfg, pinging it once
// to fail fast on misconfiguration (mirrors the teacher's NewConnection).
func Open(cfg config.DatabaseConfig) (*Store, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("accounts: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("accounts: ping: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// AccountByUsername looks up a registered player by username. It returns
// nil, nil when no account has that name. The connection handler does not
// call it during LoginStart; login records the account via RecordLogin.
func (s *Store) AccountByUsername(username string) (*Account, error) {
	var a Account
	var banned int
	row := s.db.QueryRow(
		"SELECT id, username, uuid, banned FROM accounts WHERE username = ?",
		username)
	if err := row.Scan(&a.ID, &a.Username, &a.UUID, &banned); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("accounts: lookup %q: %w", username, err)
	}
	a.Banned = banned != 0
	return &a, nil
}

// RecordLogin inserts the account if it doesn't exist yet (first-join
// auto-registration, matching LoginStart carrying its own UUID rather than
// an external auth handshake) and stamps the login time.
func (s *Store) RecordLogin(username, uuid string) error {
	_, err := s.db.Exec(
		`INSERT INTO accounts (username, uuid, last_login) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE last_login = VALUES(last_login)`,
		username, uuid, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("accounts: record login for %q: %w", username, err)
	}
	return nil
}

// RecordPlaySession logs one Play-phase entry, generalized from the
// teacher's BishopSession bookkeeping (internal/protocol/handler.go) from
// "Bishop connection" to "player session".
func (s *Store) RecordPlaySession(username string, start time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO play_sessions (username, started_at) VALUES (?, ?)`,
		username, start.UTC())
	if err != nil {
		return fmt.Errorf("accounts: record play session for %q: %w", username, err)
	}
	return nil
}
