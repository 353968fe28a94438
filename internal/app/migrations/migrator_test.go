package migrations

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// recordingTx captures statements executed on the migration transaction.
type recordingTx struct {
	pgx.Tx
	sql  []string
	args [][]any
}

func (t *recordingTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.sql = append(t.sql, sql)
	t.args = append(t.args, args)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

// The version row must go through the migration's own transaction, so a
// failed commit rolls back the schema changes and the bookkeeping together.
func TestRecordMigrationRunsOnTransaction(t *testing.T) {
	m := &Migrator{}
	tx := &recordingTx{}

	if err := m.recordMigration(context.Background(), tx, "001"); err != nil {
		t.Fatalf("recordMigration failed: %v", err)
	}

	if len(tx.sql) != 1 || !strings.Contains(tx.sql[0], "INSERT INTO schema_migrations") {
		t.Fatalf("expected the version insert on the transaction, got %v", tx.sql)
	}
	if len(tx.args[0]) == 0 || tx.args[0][0] != "001" {
		t.Fatalf("expected the version as first argument, got %v", tx.args[0])
	}
}
