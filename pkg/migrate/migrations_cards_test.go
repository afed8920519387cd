package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bentolink/bentolink-backend/pkg/migrate"
)

func TestInitSchemaMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no init schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TYPE card_type AS ENUM",
		"CREATE UNIQUE INDEX cards_profile_position_idx ON cards (profile_id, position)",
		"CHECK (cols BETWEEN 1 AND 6)",
		"CHECK (rows BETWEEN 1 AND 3)",
		"CHECK (position >= 1)",
		"DROP TABLE IF EXISTS cards",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}
