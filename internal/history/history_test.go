package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"catbridge/internal/core"
)

type fakeDB struct {
	execSQL  []string
	execArgs [][]any
	execTag  pgconn.CommandTag
	execErr  error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	f.execArgs = append(f.execArgs, args)
	return f.execTag, f.execErr
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func TestRecord(t *testing.T) {
	db := &fakeDB{}
	store := New(db)

	batch := uuid.New()
	err := store.Record(context.Background(), core.Conversion{
		BatchID:   batch,
		Platform:  "shopify",
		Filename:  "products.csv",
		Products:  3,
		Variants:  7,
		RowsTotal: 10,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	if len(db.execArgs) != 1 || len(db.execArgs[0]) != 9 {
		t.Fatalf("exec args = %+v", db.execArgs)
	}
	id, ok := db.execArgs[0][0].(pgtype.UUID)
	if !ok || !id.Valid || uuid.UUID(id.Bytes) != batch {
		t.Errorf("batch id arg = %+v", db.execArgs[0][0])
	}
	if db.execArgs[0][1] != "shopify" {
		t.Errorf("platform arg = %v", db.execArgs[0][1])
	}
}

func TestRecordWrapsError(t *testing.T) {
	db := &fakeDB{execErr: errors.New("connection refused")}
	store := New(db)

	err := store.Record(context.Background(), core.Conversion{BatchID: uuid.New()})
	if err == nil || !errors.Is(err, db.execErr) {
		t.Fatalf("err = %v, want wrapped exec error", err)
	}
}

func TestPurge(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("DELETE 3")}
	store := New(db)

	n, err := store.Purge(context.Background(), 30*24*time.Hour)
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if n != 3 {
		t.Errorf("purged = %d, want 3", n)
	}

	cutoff, ok := db.execArgs[0][0].(pgtype.Timestamptz)
	if !ok || !cutoff.Valid {
		t.Fatalf("cutoff arg = %+v", db.execArgs[0][0])
	}
	if time.Since(cutoff.Time) < 29*24*time.Hour {
		t.Errorf("cutoff too recent: %v", cutoff.Time)
	}
}
