package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name          TEXT        NOT NULL,
  email         TEXT        NOT NULL UNIQUE,
  password_hash TEXT        NOT NULL,
  active        BOOLEAN     NOT NULL DEFAULT TRUE,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_register_records",
		SQL: `CREATE TABLE IF NOT EXISTS register_records (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  module     TEXT        NOT NULL,
  title      TEXT        NOT NULL,
  status     TEXT        NOT NULL DEFAULT '',
  fields     JSONB       NOT NULL DEFAULT '{}'::jsonb,
  archived   BOOLEAN     NOT NULL DEFAULT FALSE,
  created_by UUID        NOT NULL REFERENCES users (id),
  updated_by UUID        NOT NULL REFERENCES users (id),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id               UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  module           TEXT        NOT NULL,
  parent_id        UUID        NOT NULL REFERENCES register_records (id),
  title            TEXT        NOT NULL,
  storage_key      TEXT        NOT NULL,
  content_type     TEXT        NOT NULL,
  size             BIGINT      NOT NULL CHECK (size >= 0),
  uploaded_by      UUID        NOT NULL REFERENCES users (id),
  uploaded_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  expiry_date      TIMESTAMPTZ,
  assigned_to      UUID        REFERENCES users (id),
  last_notified_at TIMESTAMPTZ
);`,
	},
	{
		Name: "create_table_document_versions",
		SQL: `CREATE TABLE IF NOT EXISTS document_versions (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  document_id  UUID        NOT NULL REFERENCES documents (id),
  label        TEXT        NOT NULL,
  storage_key  TEXT        NOT NULL,
  content_type TEXT        NOT NULL,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  notes        TEXT        NOT NULL DEFAULT '',
  created_by   UUID        NOT NULL REFERENCES users (id),
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_notification_settings",
		SQL: `CREATE TABLE IF NOT EXISTS notification_settings (
  user_id   UUID    PRIMARY KEY REFERENCES users (id),
  enabled   BOOLEAN NOT NULL DEFAULT TRUE,
  notify_30 BOOLEAN NOT NULL DEFAULT TRUE,
  notify_14 BOOLEAN NOT NULL DEFAULT TRUE,
  notify_7  BOOLEAN NOT NULL DEFAULT TRUE,
  notify_1  BOOLEAN NOT NULL DEFAULT TRUE
);`,
	},
	{
		Name: "create_index_register_records_module",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_register_records_module ON register_records (module, archived);`,
	},
	{
		Name: "create_index_documents_parent",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_parent ON documents (module, parent_id);`,
	},
	{
		Name: "create_index_documents_expiring",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_expiring ON documents (expiry_date) WHERE assigned_to IS NOT NULL AND expiry_date IS NOT NULL;`,
	},
	{
		Name: "create_index_document_versions_document",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_versions_document ON document_versions (document_id);`,
	},
}

// EnsureMigrated checks if the 'documents' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.documents') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
