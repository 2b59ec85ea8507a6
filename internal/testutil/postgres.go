// Package testutil starts throwaway databases for storage tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/dungeon/internal/config"
	"github.com/cory-johannsen/dungeon/internal/storage/postgres"
)

const (
	postgresImage = "postgres:16-alpine"
	dbCredential  = "dungeon"
	readyLog      = "database system is ready to accept connections"
)

// PostgresContainer is a running save database and its connection pool.
type PostgresContainer struct {
	Pool   *postgres.Pool
	Config config.DatabaseConfig
}

// NewPostgresContainer starts an empty postgres and connects to it. The
// container is terminated when the test ends.
//
// Precondition: Docker is reachable. The test is skipped under -short or when
// the container cannot be started.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container skipped in -short mode")
	}
	ctx := context.Background()
	began := time.Now()

	ctr, err := startPostgres(ctx)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	cfg, err := containerConfig(ctx, ctr)
	if err != nil {
		t.Fatalf("resolving container address: %v", err)
	}
	pool, err := postgres.Connect(ctx, cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("connecting to %s: %v", postgresImage, err)
	}
	t.Cleanup(pool.Close)
	t.Logf("%s ready after %s", postgresImage, time.Since(began).Round(time.Millisecond))

	return &PostgresContainer{Pool: pool, Config: cfg}
}

func startPostgres(ctx context.Context) (testcontainers.Container, error) {
	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     dbCredential,
				"POSTGRES_PASSWORD": dbCredential,
				"POSTGRES_DB":       dbCredential,
			},
			// postgres logs readiness once for the init server and once for the real one.
			WaitingFor: wait.ForLog(readyLog).WithOccurrence(2).WithStartupTimeout(45 * time.Second),
		},
		Started: true,
	})
}

func containerConfig(ctx context.Context, ctr testcontainers.Container) (config.DatabaseConfig, error) {
	host, err := ctr.Host(ctx)
	if err != nil {
		return config.DatabaseConfig{}, err
	}
	port, err := ctr.MappedPort(ctx, "5432")
	if err != nil {
		return config.DatabaseConfig{}, err
	}
	return config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            dbCredential,
		Password:        dbCredential,
		Name:            dbCredential,
		SSLMode:         "disable",
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: time.Minute,
	}, nil
}

// ApplyMigrations brings the container's schema up to date.
func (pc *PostgresContainer) ApplyMigrations(t *testing.T) {
	t.Helper()
	if err := pc.Pool.Migrate(); err != nil {
		t.Fatalf("migrating save schema: %v", err)
	}
}

// NewPool returns a migrated pool on a fresh container.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pc := NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	return pc.Pool.DB()
}
