// Package psql implements the portal repository on PostgreSQL. It mirrors the
// in-memory store's semantics: monotonic ids (sequences), insertion-order
// listing, lowercase-folded substring search.
package psql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rashidq/logistics-portal/internal/core/domain"
)

// Ensure Store satisfies the aggregate repository at compile time.
var _ domain.Repository = (*Store)(nil)

// Store provides Postgres-backed persistence for the portal.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps an injected pool, runs migrations, and seeds the catalog.
func NewStore(ctx context.Context, pool *pgxpool.Pool, seed []domain.Service) (*Store, error) {
	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	if err := s.seedServices(ctx, seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			full_name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS services (
			id SERIAL PRIMARY KEY,
			name_en TEXT NOT NULL,
			name_ar TEXT NOT NULL,
			description_en TEXT NOT NULL,
			description_ar TEXT NOT NULL,
			icon TEXT NOT NULL,
			category TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		);`,
		`CREATE TABLE IF NOT EXISTS service_requests (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			service_id INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			details TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS search_queries (
			id SERIAL PRIMARY KEY,
			query TEXT NOT NULL,
			results INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// seedServices inserts catalog rows once; an already-seeded table is left alone.
func (s *Store) seedServices(ctx context.Context, seed []domain.Service) error {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM services`).Scan(&count); err != nil {
		return fmt.Errorf("count services: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, svc := range seed {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO services (name_en, name_ar, description_en, description_ar, icon, category, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			svc.NameEn, svc.NameAr, svc.DescriptionEn, svc.DescriptionAr, string(svc.Icon), svc.Category, svc.IsActive)
		if err != nil {
			return fmt.Errorf("seed service %q: %w", svc.NameEn, err)
		}
	}
	return nil
}

// GetUser retrieves a user by id.
func (s *Store) GetUser(ctx context.Context, id int) (*domain.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, full_name, created_at FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetUserByUsername fetches a user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, full_name, created_at FROM users WHERE username = $1`, username)
	return scanUser(row)
}

// GetUserByEmail fetches a user by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, full_name, created_at FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// CreateUser inserts a new user row. The unique index on email surfaces
// concurrent duplicate signups as ErrEmailTaken, which the in-memory store
// cannot do; both paths report the same error to callers.
func (s *Store) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, full_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, username, email, password_hash, full_name, created_at`,
		u.Username, u.Email, u.PasswordHash, u.FullName)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

// GetAllServices returns active services in insertion order.
func (s *Store) GetAllServices(ctx context.Context) ([]domain.Service, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name_en, name_ar, description_en, description_ar, icon, category, is_active
		 FROM services WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query services: %w", err)
	}
	defer rows.Close()
	return scanServices(rows)
}

// GetService retrieves one service by id, active or not.
func (s *Store) GetService(ctx context.Context, id int) (*domain.Service, error) {
	var svc domain.Service
	var icon string
	err := s.pool.QueryRow(ctx,
		`SELECT id, name_en, name_ar, description_en, description_ar, icon, category, is_active
		 FROM services WHERE id = $1`, id).
		Scan(&svc.ID, &svc.NameEn, &svc.NameAr, &svc.DescriptionEn, &svc.DescriptionAr, &icon, &svc.Category, &svc.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("query service: %w", err)
	}
	svc.Icon = domain.ParseIcon(icon)
	return &svc, nil
}

// SearchServices matches the query as a lowercase-folded substring across the
// bilingual name/description fields and category, in insertion order.
func (s *Store) SearchServices(ctx context.Context, query string, limit int) ([]domain.Service, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	rows, err := s.pool.Query(ctx,
		`SELECT id, name_en, name_ar, description_en, description_ar, icon, category, is_active
		 FROM services
		 WHERE is_active AND (
			LOWER(name_en) LIKE $1 OR LOWER(name_ar) LIKE $1 OR
			LOWER(description_en) LIKE $1 OR LOWER(description_ar) LIKE $1 OR
			LOWER(category) LIKE $1
		 )
		 ORDER BY id
		 LIMIT $2`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search services: %w", err)
	}
	defer rows.Close()
	return scanServices(rows)
}

// CreateServiceRequest inserts a request; referenced ids are not validated.
func (s *Store) CreateServiceRequest(ctx context.Context, r domain.ServiceRequest) (*domain.ServiceRequest, error) {
	status := r.Status
	if status == "" {
		status = domain.StatusPending
	}
	row := s.pool.QueryRow(ctx,
		`INSERT INTO service_requests (user_id, service_id, status, details)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, service_id, status, details, created_at`,
		r.UserID, r.ServiceID, string(status), r.Details)
	var created domain.ServiceRequest
	var st string
	if err := row.Scan(&created.ID, &created.UserID, &created.ServiceID, &st, &created.Details, &created.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert service request: %w", err)
	}
	created.Status = domain.RequestStatus(st)
	return &created, nil
}

// GetServiceRequestsByUser returns a user's requests in creation order.
func (s *Store) GetServiceRequestsByUser(ctx context.Context, userID int) ([]domain.ServiceRequest, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, service_id, status, details, created_at
		 FROM service_requests WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query service requests: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ServiceRequest, 0)
	for rows.Next() {
		var r domain.ServiceRequest
		var st string
		if err := rows.Scan(&r.ID, &r.UserID, &r.ServiceID, &st, &r.Details, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service request: %w", err)
		}
		r.Status = domain.RequestStatus(st)
		out = append(out, r)
	}
	return out, rows.Err()
}

// LogSearchQuery appends a write-only log row.
func (s *Store) LogSearchQuery(ctx context.Context, query string, results int) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO search_queries (query, results) VALUES ($1, $2)`, query, results)
	if err != nil {
		return fmt.Errorf("insert search query: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func scanServices(rows pgx.Rows) ([]domain.Service, error) {
	out := make([]domain.Service, 0)
	for rows.Next() {
		var svc domain.Service
		var icon string
		if err := rows.Scan(&svc.ID, &svc.NameEn, &svc.NameAr, &svc.DescriptionEn, &svc.DescriptionAr, &icon, &svc.Category, &svc.IsActive); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		svc.Icon = domain.ParseIcon(icon)
		out = append(out, svc)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
