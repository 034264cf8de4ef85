// Package driver provides database driver abstractions for transcript storage.
//
// A Driver wraps a connection pool and hands out Executors and a
// storage.Store built on them. The pgx/v5 implementation lives in
// github.com/youssefsiam38/agentrelay/driver/pgxv5.
package driver

import (
	"context"

	"github.com/youssefsiam38/agentrelay/storage"
)

// Driver provides database operations for transcript storage.
type Driver interface {
	// GetExecutor returns an executor backed by the connection pool.
	GetExecutor() Executor

	// PoolIsSet returns true if the driver has a database pool configured.
	PoolIsSet() bool

	// GetStore returns a Store implementation using this driver.
	GetStore() storage.Store

	// Migrate creates the tables the store needs if they do not exist.
	Migrate(ctx context.Context) error
}
