package main

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"video-app/pkg/logger"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
)

const embeddedDBStartPort uint32 = 15432

// findAvailablePort finds an available port starting from the given port
func findAvailablePort(startPort uint32) (uint32, error) {
	for port := startPort; port < startPort+100; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			ln.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in [%d, %d)", startPort, startPort+100)
}

// startEmbeddedDB starts a throwaway PostgreSQL under ~/.video-app. The data
// directory is wiped on every start; the API applies the schema and seeds it.
func startEmbeddedDB() (*embeddedpostgres.EmbeddedPostgres, uint32, error) {
	port, err := findAvailablePort(embeddedDBStartPort)
	if err != nil {
		return nil, 0, err
	}
	logger.Infof("using port %d for embedded PostgreSQL", port)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get user home directory: %w", err)
	}

	baseDir := filepath.Join(homeDir, ".video-app")
	dataDir := filepath.Join(baseDir, "data")
	runtimeDir := filepath.Join(baseDir, "runtime")
	binariesDir := filepath.Join(baseDir, "binaries")

	err = os.RemoveAll(dataDir)
	if err != nil {
		logger.Warnf("failed to clean up existing data directory: %v", err)
	}
	for _, dir := range []string{dataDir, runtimeDir, binariesDir} {
		err = os.MkdirAll(dir, 0o755)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	db := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		Username(embeddedDBUser).
		Password(embeddedDBPassword).
		Database(embeddedDBName).
		Port(port).
		RuntimePath(runtimeDir).
		DataPath(dataDir).
		BinariesPath(binariesDir))

	// Start blocks until the server accepts connections
	err = db.Start()
	if err != nil {
		return nil, 0, err
	}

	logger.Infof("embedded PostgreSQL started on port %d", port)
	return db, port, nil
}

func stopEmbeddedDB(db *embeddedpostgres.EmbeddedPostgres) {
	logger.Info("shutting down embedded PostgreSQL")
	err := db.Stop()
	if err != nil {
		logger.Error(err, "failed to stop embedded PostgreSQL")
	}
}
