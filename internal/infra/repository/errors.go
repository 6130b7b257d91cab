package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const sqliteUniquePrefix = "UNIQUE constraint failed: "

// uniqueTarget returns the violated constraint name on Postgres or the
// "table.col, table.col" list SQLite reports.
func uniqueTarget(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return pgErr.ConstraintName, true
		}
		return "", false
	}

	msg := err.Error()
	if i := strings.Index(msg, sqliteUniquePrefix); i >= 0 {
		return strings.TrimSpace(msg[i+len(sqliteUniquePrefix):]), true
	}
	return "", false
}

// violates reports whether err is a unique violation of the named index,
// identified by name on Postgres or by its column list on SQLite.
func violates(err error, index, columns string) bool {
	target, ok := uniqueTarget(err)
	if !ok {
		return false
	}
	return target == index || target == columns
}

func isUniqueViolation(err error) bool {
	_, ok := uniqueTarget(err)
	return ok
}

// isRetryable reports serialization failures, deadlocks and SQLite busy
// errors.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return err != nil && strings.Contains(err.Error(), "database is locked")
}

func isPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

// forUpdate adds FOR UPDATE where the store supports row locks.
func forUpdate(db *gorm.DB) *gorm.DB {
	if isPostgres(db) {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

// advisoryLock takes transaction scoped locks in the given order. SQLite
// runs with a single connection, so transactions are already serialized.
func advisoryLock(tx *gorm.DB, keys ...string) error {
	if !isPostgres(tx) {
		return nil
	}
	for _, k := range keys {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", k).Error; err != nil {
			return err
		}
	}
	return nil
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
