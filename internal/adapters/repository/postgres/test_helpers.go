package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// findMigrationsDir walks upwards to the module root and returns db/migrations.
func findMigrationsDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return filepath.Join(wd, "db", "migrations"), nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return "", errors.New("go.mod not found in any parent directory")
		}
		wd = parent
	}
}

// NewTestDB starts a disposable postgres container, runs the migrations and
// returns the db handle, a cleanup func and a func that resets the jobs table.
func NewTestDB(t *testing.T) (*sql.DB, func(), func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:13-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "transcoder",
			"POSTGRES_PASSWORD": "transcoder",
			"POSTGRES_DB":       "transcoder_test",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	postgresContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("could not start postgres container: %v", err)
	}

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("could not resolve container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("could not resolve container port: %v", err)
	}
	dbURL := fmt.Sprintf("postgres://transcoder:transcoder@%s:%s/transcoder_test?sslmode=disable", host, port.Port())

	migrationsDir, err := findMigrationsDir()
	if err != nil {
		t.Fatalf("could not locate migrations: %v", err)
	}

	sourceURL := &url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(migrationsDir),
	}

	m, err := migrate.New(sourceURL.String(), dbURL)
	if err != nil {
		t.Fatalf("failed to init migrate with URL %s: %v", sourceURL.String(), err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("failed to run up migrations: %v", err)
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	cleanup := func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate postgres container: %v", err)
		}
		db.Close()
	}

	resetJobs := func() {
		if _, err := db.Exec(`TRUNCATE TABLE jobs RESTART IDENTITY CASCADE`); err != nil {
			t.Fatalf("failed to reset jobs table: %v", err)
		}
	}
	return db, cleanup, resetJobs
}
