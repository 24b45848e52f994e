package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/Kamar-Folarin/repo-insights/internal/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

// LinkStore persists the GitHub link of each project.
type LinkStore interface {
	// GetGitHubLink returns nil without error when the project has no link.
	GetGitHubLink(ctx context.Context, projectID string) (*models.GitHubLink, error)
	SaveGitHubLink(ctx context.Context, projectID string, link models.GitHubLink) error
	DeleteGitHubLink(ctx context.Context, projectID string) error
}

type PostgresStore struct {
	db *sql.DB
}

var _ LinkStore = (*PostgresStore)(nil)

// NewPostgresStore opens and pings the database.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewPostgresStoreFromDB(db), nil
}

// NewPostgresStoreFromDB wraps an already opened database.
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate applies the embedded goose migrations.
func (s *PostgresStore) Migrate() error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) GetGitHubLink(ctx context.Context, projectID string) (*models.GitHubLink, error) {
	query := `
		SELECT owner, repo, token
		FROM project_github_links
		WHERE project_id = $1`

	var link models.GitHubLink
	err := s.db.QueryRowContext(ctx, query, projectID).Scan(&link.Owner, &link.Repo, &link.Token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get github link for project %s: %w", projectID, err)
	}

	return &link, nil
}

func (s *PostgresStore) SaveGitHubLink(ctx context.Context, projectID string, link models.GitHubLink) error {
	query := `
		INSERT INTO project_github_links (project_id, owner, repo, token)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (project_id) DO UPDATE SET
			owner = EXCLUDED.owner,
			repo = EXCLUDED.repo,
			token = EXCLUDED.token,
			updated_at = NOW()`

	if _, err := s.db.ExecContext(ctx, query, projectID, link.Owner, link.Repo, link.Token); err != nil {
		return fmt.Errorf("failed to save github link for project %s: %w", projectID, err)
	}
	return nil
}

func (s *PostgresStore) DeleteGitHubLink(ctx context.Context, projectID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM project_github_links WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("failed to delete github link for project %s: %w", projectID, err)
	}
	return nil
}

// MemoryStore is a LinkStore kept in process memory. It is used when no
// database is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	links map[string]models.GitHubLink
}

var _ LinkStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{links: make(map[string]models.GitHubLink)}
}

func (s *MemoryStore) GetGitHubLink(_ context.Context, projectID string) (*models.GitHubLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.links[projectID]
	if !ok {
		return nil, nil
	}
	return &link, nil
}

func (s *MemoryStore) SaveGitHubLink(_ context.Context, projectID string, link models.GitHubLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.links[projectID] = link
	return nil
}

func (s *MemoryStore) DeleteGitHubLink(_ context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.links, projectID)
	return nil
}
