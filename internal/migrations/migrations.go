package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var embedded embed.FS

// Dir is the migrations directory inside the embedded filesystem.
const Dir = "sql"

func init() {
	goose.SetBaseFS(embedded)
}

// Open connects with the lib/pq driver goose runs on.
func Open(dsn string) (*sql.DB, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("failed to set dialect: %w", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func Up(ctx context.Context, db *sql.DB) error {
	return goose.UpContext(ctx, db, Dir)
}

func Down(ctx context.Context, db *sql.DB) error {
	return goose.DownContext(ctx, db, Dir)
}

func Status(ctx context.Context, db *sql.DB) error {
	return goose.StatusContext(ctx, db, Dir)
}

func Reset(ctx context.Context, db *sql.DB) error {
	return goose.ResetContext(ctx, db, Dir)
}
