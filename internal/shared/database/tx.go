// Package database holds the glue between database/sql transactions and the
// gorm repositories, plus Postgres error classification.
package database

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

// Bind returns a gorm handle whose statements run on tx. A nil tx returns db unchanged.
func Bind(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	// A context forces gorm to clone the statement so db itself is untouched.
	bound := db.Session(&gorm.Session{NewDB: true, Context: context.Background()})
	bound.Statement.ConnPool = tx
	return bound
}

// SerializableTx is the option set used by every check-then-write leave operation.
var SerializableTx = &sql.TxOptions{Isolation: sql.LevelSerializable}

// AdvisoryXactLock takes a transaction scoped advisory lock keyed by key. It is
// released on commit or rollback.
func AdvisoryXactLock(ctx context.Context, db *gorm.DB, key int64) error {
	if err := db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", key).Error; err != nil {
		return fmt.Errorf("database: advisory lock %d: %w", key, err)
	}
	return nil
}
