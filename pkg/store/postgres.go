package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	username       TEXT PRIMARY KEY,
	password_hash  TEXT NOT NULL,
	high_score     INTEGER NOT NULL DEFAULT 0,
	otp_code       TEXT,
	otp_expires_at TIMESTAMPTZ,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// uniqueViolation is the SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// Postgres stores accounts in a PostgreSQL table through the pgx driver.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to dsn and creates the accounts table if needed.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) CreateAccount(ctx context.Context, a Account) error {
	query := `
		INSERT INTO accounts (username, password_hash, high_score)
		VALUES ($1, $2, $3)
	`
	_, err := p.db.ExecContext(ctx, query, a.Username, a.PasswordHash, a.HighScore)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (p *Postgres) Account(ctx context.Context, username string) (Account, error) {
	query := `
		SELECT username, password_hash, high_score, otp_code, otp_expires_at
		FROM accounts
		WHERE username = $1
	`
	var (
		a       Account
		code    sql.NullString
		expires sql.NullTime
	)
	err := p.db.QueryRowContext(ctx, query, username).
		Scan(&a.Username, &a.PasswordHash, &a.HighScore, &code, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, err
	}
	a.OTPCode = code.String
	if expires.Valid {
		a.OTPExpiresAt = expires.Time
	}
	return a, nil
}

func (p *Postgres) SetHighScore(ctx context.Context, username string, score int) error {
	return p.exec(ctx, `UPDATE accounts SET high_score = $2 WHERE username = $1`, username, score)
}

func (p *Postgres) SetOTP(ctx context.Context, username, code string, expiresAt time.Time) error {
	return p.exec(ctx, `UPDATE accounts SET otp_code = $2, otp_expires_at = $3 WHERE username = $1`,
		username, code, expiresAt)
}

func (p *Postgres) ClearOTP(ctx context.Context, username string) error {
	return p.exec(ctx, `UPDATE accounts SET otp_code = NULL, otp_expires_at = NULL WHERE username = $1`, username)
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

// exec runs an UPDATE keyed by username and maps "no rows" to ErrNotFound.
func (p *Postgres) exec(ctx context.Context, query string, args ...any) error {
	res, err := p.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
