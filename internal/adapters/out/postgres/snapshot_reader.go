// Package postgres provides the GORM-based read side of an assignment run.
//
// The drivers and the open orders of one run are read inside a single
// read-only transaction, so both lists come from the same database snapshot
// even while the order system keeps writing.
//
// Usage:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    return err
//	}
//	if err := postgres.Migrate(db); err != nil {
//	    return err
//	}
//
//	reader := postgres.NewSnapshotReader(db)
//	drivers, orders, err := reader.ReadInputs(ctx)
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/geocoderepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service reads or writes.
func Migrate(db *gorm.DB) error {
	return errors.Join(
		driverrepo.Migrate(db),
		orderrepo.Migrate(db),
		geocoderepo.Migrate(db),
	)
}

// SnapshotReader implements ports.InputReader over GORM repositories.
//
// Each call to ReadInputs opens a fresh REPEATABLE READ, read-only
// transaction, builds the driver and order repositories on it, and rolls it
// back when done. Concurrent calls use separate transactions.
//
// Example:
//
//	reader := postgres.NewSnapshotReader(db)
//	drivers, orders, err := reader.ReadInputs(ctx)
//	if err != nil {
//	    return fmt.Errorf("read inputs: %w", err)
//	}
type SnapshotReader struct {
	db *gorm.DB
}

// NewSnapshotReader creates a reader on the given connection.
func NewSnapshotReader(db *gorm.DB) *SnapshotReader {
	return &SnapshotReader{db: db}
}

// ReadInputs returns all drivers and all open orders from one snapshot.
func (r *SnapshotReader) ReadInputs(ctx context.Context) ([]*driver.Driver, []*order.Order, error) {
	tx := r.db.WithContext(ctx).Begin(&sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if tx.Error != nil {
		return nil, nil, fmt.Errorf("begin snapshot: %w", tx.Error)
	}
	defer tx.Rollback()

	drivers, err := driverrepo.NewGormDriverRepository(tx).ListDrivers(ctx)
	if err != nil {
		return nil, nil, err
	}

	orders, err := orderrepo.NewGormOrderRepository(tx).ListOpenOrders(ctx)
	if err != nil {
		return nil, nil, err
	}

	return drivers, orders, nil
}
