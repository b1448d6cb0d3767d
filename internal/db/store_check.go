// internal/db/store_check.go
package db

import "github.com/codr1/leagus/internal/store"

var _ store.Store = (*DB)(nil)
