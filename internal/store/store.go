package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// Pool exposes the underlying pool for components that manage their own queries.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// TurnRow mirrors one row of chat_turns.
type TurnRow struct {
	TurnID      string
	UserKey     string
	Seq         int
	UserMessage string
	BotMessage  *string
	CreatedAt   time.Time
}

// InsertTurn appends a new turn for the user key with no bot message yet.
// Seq is assigned from the current maximum for the key; turns for one key are
// written by at most one in-flight request, so the read-then-insert is safe.
func (s *Store) InsertTurn(ctx context.Context, turnID, userKey, userMessage string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO chat_turns (turn_id, user_key, seq, user_message, created_at)
		VALUES ($1, $2, (SELECT COALESCE(MAX(seq), 0) + 1 FROM chat_turns WHERE user_key = $2), $3, now())
	`, turnID, userKey, userMessage)
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}

	slog.Debug("store: turn inserted", "user_key", userKey, "turn_id", turnID)
	return nil
}

// CompleteTurn records the bot message on the newest unanswered turn for the
// user key. Answered turns are never rewritten.
func (s *Store) CompleteTurn(ctx context.Context, userKey, botMessage string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE chat_turns SET bot_message = $2
		WHERE turn_id = (
			SELECT turn_id FROM chat_turns
			WHERE user_key = $1 AND bot_message IS NULL
			ORDER BY seq DESC LIMIT 1
		)
	`, userKey, botMessage)
	if err != nil {
		return fmt.Errorf("complete turn: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("complete turn: no unanswered turn for %s", userKey)
	}
	return nil
}

// GetTurns returns all turns for the user key, oldest first.
func (s *Store) GetTurns(ctx context.Context, userKey string) ([]TurnRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT turn_id, user_key, seq, user_message, bot_message, created_at
		FROM chat_turns
		WHERE user_key = $1
		ORDER BY seq
	`, userKey)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var turns []TurnRow
	for rows.Next() {
		var t TurnRow
		if err := rows.Scan(&t.TurnID, &t.UserKey, &t.Seq, &t.UserMessage, &t.BotMessage, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// TurnsExist reports whether any turns exist for the user key.
func (s *Store) TurnsExist(ctx context.Context, userKey string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM chat_turns WHERE user_key = $1)`,
		userKey,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check turns exist: %w", err)
	}
	return exists, nil
}

// UserRow mirrors one row of users.
type UserRow struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// ErrEmailTaken is returned by InsertUser when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// ErrUserNotFound is returned by GetUserByEmail for unknown emails.
var ErrUserNotFound = errors.New("user not found")

func (s *Store) InsertUser(ctx context.Context, id, username, email, passwordHash string) error {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (email) DO NOTHING
	`, id, username, email, passwordHash)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEmailTaken
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*UserRow, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE email = $1
	`, email)

	var u UserRow
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// ListUsers returns all registered users, newest first.
func (s *Store) ListUsers(ctx context.Context) ([]UserRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []UserRow
	for rows.Next() {
		var u UserRow
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
