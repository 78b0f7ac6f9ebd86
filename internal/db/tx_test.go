package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE test_table (id INTEGER PRIMARY KEY, value TEXT UNIQUE)`)
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM test_table`).Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	return count
}

func TestWithTx_Commit(t *testing.T) {
	db := setupTestDB(t)

	err := WithTx(db, func(tx *sql.Tx) error {
		for _, v := range []string{"first", "second"} {
			if _, err := tx.Exec(`INSERT INTO test_table (value) VALUES (?)`, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}
	if got := countRows(t, db); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db := setupTestDB(t)
	abort := errors.New("abort")

	err := WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO test_table (value) VALUES (?)`, "x"); err != nil {
			return err
		}
		return abort
	})
	if !errors.Is(err, abort) {
		t.Fatalf("err = %v, want %v", err, abort)
	}
	if got := countRows(t, db); got != 0 {
		t.Errorf("count = %d, want 0 (rolled back)", got)
	}
}

func TestWithTxContext_CanceledContext(t *testing.T) {
	db := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := WithTxContext(ctx, db, func(*sql.Tx) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if called {
		t.Error("fn should not run when the transaction cannot begin")
	}
}

func TestSavepoint_RollsBackOnlyFailedStep(t *testing.T) {
	db := setupTestDB(t)

	err := WithTx(db, func(tx *sql.Tx) error {
		for _, v := range []string{"a", "a", "b"} {
			spErr := Savepoint(tx, "entry", func() error {
				_, err := tx.Exec(`INSERT INTO test_table (value) VALUES (?)`, v)
				return err
			})
			if spErr != nil && v != "a" {
				return spErr
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}
	if got := countRows(t, db); got != 2 {
		t.Errorf("count = %d, want 2 (duplicate skipped)", got)
	}
}

func TestSavepoint_ReturnsStepError(t *testing.T) {
	db := setupTestDB(t)
	stepErr := errors.New("step")

	var got error
	err := WithTx(db, func(tx *sql.Tx) error {
		got = Savepoint(tx, "sp", func() error {
			if _, err := tx.Exec(`INSERT INTO test_table (value) VALUES (?)`, "x"); err != nil {
				return err
			}
			return stepErr
		})
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}
	if !errors.Is(got, stepErr) {
		t.Errorf("Savepoint err = %v, want %v", got, stepErr)
	}
	if n := countRows(t, db); n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestNullHelpers(t *testing.T) {
	if p := NullInt64ToPtr(sql.NullInt64{Int64: 42, Valid: true}); p == nil || *p != 42 {
		t.Errorf("NullInt64ToPtr(valid) = %v, want 42", p)
	}
	if p := NullInt64ToPtr(sql.NullInt64{Int64: 42}); p != nil {
		t.Errorf("NullInt64ToPtr(invalid) = %d, want nil", *p)
	}
	if v := NullInt64Value(sql.NullInt64{Int64: -7, Valid: true}); v != -7 {
		t.Errorf("NullInt64Value(valid) = %d, want -7", v)
	}
	if v := NullInt64Value(sql.NullInt64{Int64: 7}); v != 0 {
		t.Errorf("NullInt64Value(invalid) = %d, want 0", v)
	}
	if v := NullStringValue(sql.NullString{String: "hello", Valid: true}); v != "hello" {
		t.Errorf("NullStringValue(valid) = %q", v)
	}
	if v := NullStringValue(sql.NullString{String: "hello"}); v != "" {
		t.Errorf("NullStringValue(invalid) = %q, want empty", v)
	}
	if ns := NullString(""); ns.Valid {
		t.Error("NullString(\"\") should be NULL")
	}
	if ns := NullString("x"); !ns.Valid || ns.String != "x" {
		t.Errorf("NullString(\"x\") = %+v", ns)
	}
}

func TestSortOrder(t *testing.T) {
	if Ascending.SQL() != "ASC" || Descending.SQL() != "DESC" {
		t.Errorf("SQL() = %q/%q", Ascending.SQL(), Descending.SQL())
	}
	if Ascending.Toggle() != Descending || Descending.Toggle() != Ascending {
		t.Error("Toggle should flip the order")
	}
}
