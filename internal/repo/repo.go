package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"HDDPull/internal/calc/hdd"
)

var ErrNotFound = errors.New("not found")

type Analysis struct {
	ID        int                   `json:"id"`
	UserID    int                   `json:"user_id"`
	Name      string                `json:"name"`
	Input     hdd.Request           `json:"input"`
	Result    hdd.CalculationResult `json:"result"`
	CreatedAt time.Time             `json:"created_at"`
}

// AnalysisSummary is a listing row; it omits the stored input and result.
type AnalysisSummary struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	PullForceKN  float64   `json:"pull_force_kn"`
	IsSafe       bool      `json:"is_safe"`
	WarningCount int       `json:"warning_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
	SaveAnalysis(ctx context.Context, a Analysis) (int, error)
	ListAnalyses(ctx context.Context, userID int) ([]AnalysisSummary, error)
	GetAnalysis(ctx context.Context, userID, id int) (Analysis, error)
}

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	login TEXT UNIQUE NOT NULL,
	email TEXT NOT NULL,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS analyses (
	id SERIAL PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	input JSONB NOT NULL,
	result JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS analyses_user_idx ON analyses (user_id, created_at DESC);
`

func (r *PostgresUserRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresUserRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresUserRepository) SaveAnalysis(ctx context.Context, a Analysis) (int, error) {
	in, err := json.Marshal(a.Input)
	if err != nil {
		return 0, fmt.Errorf("encode input: %w", err)
	}
	out, err := json.Marshal(a.Result)
	if err != nil {
		return 0, fmt.Errorf("encode result: %w", err)
	}
	var id int
	query := "INSERT INTO analyses (user_id, name, input, result) VALUES ($1, $2, $3, $4) RETURNING id"
	if err := r.db.QueryRowContext(ctx, query, a.UserID, a.Name, in, out).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresUserRepository) ListAnalyses(ctx context.Context, userID int) ([]AnalysisSummary, error) {
	query := `SELECT id, name,
		(result->>'estimated_pull_force_kn')::float8,
		(result->>'is_safe')::boolean,
		COALESCE(jsonb_array_length(result->'warnings'), 0),
		created_at
		FROM analyses WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []AnalysisSummary{}
	for rows.Next() {
		var s AnalysisSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.PullForceKN, &s.IsSafe, &s.WarningCount, &s.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *PostgresUserRepository) GetAnalysis(ctx context.Context, userID, id int) (Analysis, error) {
	var a Analysis
	var in, out []byte
	query := "SELECT id, user_id, name, input, result, created_at FROM analyses WHERE id=$1 AND user_id=$2"
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&a.ID, &a.UserID, &a.Name, &in, &out, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	if err := json.Unmarshal(in, &a.Input); err != nil {
		return Analysis{}, fmt.Errorf("decode input: %w", err)
	}
	if err := json.Unmarshal(out, &a.Result); err != nil {
		return Analysis{}, fmt.Errorf("decode result: %w", err)
	}
	return a, nil
}
