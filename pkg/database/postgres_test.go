package database

import (
	"errors"
	"fmt"
	"testing"

	"video-app/pkg/config"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestGetDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		Username: "u",
		Password: "p",
		Name:     "video_app",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=video_app sslmode=disable", getDSN(cfg))

	cfg.URL = "postgres://u:p@db:5432/video_app?sslmode=require"
	assert.Equal(t, cfg.URL, getDSN(cfg))
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}

	assert.True(t, IsUniqueViolation(dup))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert user: %w", dup)))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23502"}))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestSchemaEmbedded(t *testing.T) {
	assert.Contains(t, schemaSQL, "CREATE UNIQUE INDEX IF NOT EXISTS users_email_key")
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS videos")
}
