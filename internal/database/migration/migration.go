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
		Name: "create_table_company_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS company_profiles (
  id   BIGSERIAL    PRIMARY KEY,
  name VARCHAR(120) NOT NULL UNIQUE
);`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id          BIGSERIAL    PRIMARY KEY,
  user_type   VARCHAR(12)  NOT NULL CHECK (user_type IN ('INTERNAL', 'EXTERNAL')),
  name        VARCHAR(180) NOT NULL,
  email       VARCHAR(180),
  permissions TEXT,
  created_at  TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_companies",
		SQL: `CREATE TABLE IF NOT EXISTS companies (
  id                  BIGSERIAL    PRIMARY KEY,
  person_type         VARCHAR(12)  NOT NULL CHECK (person_type IN ('CORPORATE', 'INDIVIDUAL', 'FOREIGN')),
  trade_name          VARCHAR(120) NOT NULL,
  profile_id          BIGINT       NOT NULL REFERENCES company_profiles (id),
  direct_billing      BOOLEAN      NOT NULL DEFAULT false,
  legal_name          VARCHAR(180),
  cnpj                CHAR(14)     UNIQUE,
  person_name         VARCHAR(180),
  cpf                 CHAR(11)     UNIQUE,
  foreign_legal_name  VARCHAR(180),
  foreign_id          VARCHAR(60)  UNIQUE,
  approval_status     VARCHAR(15)  NOT NULL DEFAULT 'PENDING' CHECK (approval_status IN ('PENDING', 'APPROVED', 'REJECTED')),
  rejection_reason    VARCHAR(500),
  created_by_user_id  BIGINT       NOT NULL REFERENCES users (id),
  approved_by_user_id BIGINT       REFERENCES users (id),
  approved_at         TIMESTAMPTZ,
  created_at          TIMESTAMPTZ  NOT NULL DEFAULT now(),
  updated_at          TIMESTAMPTZ  NOT NULL DEFAULT now(),
  CONSTRAINT chk_companies_corporate  CHECK (person_type <> 'CORPORATE'  OR (legal_name IS NOT NULL AND cnpj IS NOT NULL)),
  CONSTRAINT chk_companies_individual CHECK (person_type <> 'INDIVIDUAL' OR (person_name IS NOT NULL AND cpf IS NOT NULL)),
  CONSTRAINT chk_companies_foreign    CHECK (person_type <> 'FOREIGN'    OR (foreign_id IS NOT NULL AND (foreign_legal_name IS NOT NULL OR legal_name IS NOT NULL)))
);`,
	},
	{
		Name: "create_table_company_responsibles",
		SQL: `CREATE TABLE IF NOT EXISTS company_responsibles (
  id                  BIGSERIAL   PRIMARY KEY,
  company_id          BIGINT      NOT NULL REFERENCES companies (id) ON DELETE CASCADE,
  external_user_id    BIGINT      NOT NULL REFERENCES users (id),
  active              BOOLEAN     NOT NULL DEFAULT true,
  assigned_by_user_id BIGINT      REFERENCES users (id),
  assigned_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_company_documents",
		SQL: `CREATE TABLE IF NOT EXISTS company_documents (
  id                BIGSERIAL    PRIMARY KEY,
  company_id        BIGINT       NOT NULL REFERENCES companies (id) ON DELETE CASCADE,
  required          BOOLEAN      NOT NULL DEFAULT true,
  description       VARCHAR(120),
  original_filename VARCHAR(255) NOT NULL,
  stored_filename   VARCHAR(255) NOT NULL,
  mime_type         VARCHAR(50)  NOT NULL,
  size_bytes        BIGINT       NOT NULL CHECK (size_bytes >= 0),
  content_hash      CHAR(64)     NOT NULL,
  storage_driver    VARCHAR(10)  NOT NULL DEFAULT 'local' CHECK (storage_driver IN ('local', 's3', 'minio')),
  storage_path      VARCHAR(500) NOT NULL,
  status            VARCHAR(10)  NOT NULL DEFAULT 'ACTIVE' CHECK (status IN ('ACTIVE', 'REMOVED')),
  created_at        TIMESTAMPTZ  NOT NULL DEFAULT now(),
  CONSTRAINT uq_company_documents_company_hash UNIQUE (company_id, content_hash)
);`,
	},
	{
		Name: "create_index_company_documents_company_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_company_documents_company_id ON company_documents (company_id);`,
	},
	{
		Name: "create_index_company_responsibles_company_active",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_company_responsibles_company_active ON company_responsibles (company_id) WHERE active;`,
	},
	{
		Name: "create_index_companies_approval_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_companies_approval_status ON companies (approval_status);`,
	},
	{
		Name: "seed_company_profiles",
		SQL: `INSERT INTO company_profiles (name)
VALUES ('CLIENT'), ('SUPPLIER'), ('CARRIER'), ('PARTNER')
ON CONFLICT (name) DO NOTHING;`,
	},
}

// EnsureMigrated checks if the 'companies' table exists and runs migrations if it doesn't.
// The UNIQUE (company_id, content_hash) constraint on company_documents is the
// arbiter for concurrent uploads of identical content and must not be dropped.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.companies') IS NOT NULL"
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
