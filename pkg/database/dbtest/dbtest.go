// Package dbtest runs a throwaway embedded Postgres with the API schema
// applied, for repository tests.
package dbtest

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"video-app/pkg/config"
	"video-app/pkg/database"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
)

const (
	dbName     = "video_app_test"
	dbUser     = "postgres"
	dbPassword = "postgres"
)

// Server is a running embedded Postgres and a pool connected to it.
type Server struct {
	DB *sql.DB

	pg  *embeddedpostgres.EmbeddedPostgres
	dir string
}

// Start boots Postgres on a free port under a temporary directory and
// applies the schema.
func Start() (*Server, error) {
	port, err := freePort()
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "video-app-pg-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}

	pg := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		Username(dbUser).
		Password(dbPassword).
		Database(dbName).
		Port(port).
		RuntimePath(filepath.Join(dir, "runtime")).
		DataPath(filepath.Join(dir, "data")).
		Logger(io.Discard))

	err = pg.Start()
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to start embedded postgres: %w", err)
	}

	srv := &Server{pg: pg, dir: dir}

	srv.DB, err = database.NewPgDB(&config.Config{
		Database: config.DatabaseConfig{
			Name:            dbName,
			Host:            "localhost",
			Port:            fmt.Sprintf("%d", port),
			Username:        dbUser,
			Password:        dbPassword,
			MaxOpenConns:    5,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Minute,
			SSLMode:         "disable",
		},
	})
	if err != nil {
		srv.Stop()
		return nil, err
	}

	err = database.Migrate(context.Background(), srv.DB)
	if err != nil {
		srv.Stop()
		return nil, err
	}

	return srv, nil
}

// Stop closes the pool, stops Postgres and removes its files.
func (s *Server) Stop() {
	if s.DB != nil {
		s.DB.Close()
	}
	s.pg.Stop()
	os.RemoveAll(s.dir)
}

// Reset empties the given tables.
func (s *Server) Reset(t *testing.T, tables ...string) {
	t.Helper()
	for _, table := range tables {
		_, err := s.DB.Exec("TRUNCATE TABLE " + table)
		if err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}

// Run is a TestMain body: it starts the server, runs the tests and stops it.
// When Postgres cannot be started (e.g. binaries cannot be downloaded) the
// tests still run and *srv stays nil, so they can skip.
func Run(m *testing.M, srv **Server) int {
	if !flag.Parsed() {
		flag.Parse()
	}

	if !testing.Short() {
		s, err := Start()
		if err != nil {
			fmt.Fprintf(os.Stderr, "embedded postgres unavailable, database tests will skip: %v\n", err)
		} else {
			*srv = s
			defer s.Stop()
		}
	}

	return m.Run()
}

func freePort() (uint32, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("failed to find a free port: %w", err)
	}
	defer ln.Close()
	return uint32(ln.Addr().(*net.TCPAddr).Port), nil
}
