package db

import (
	"database/sql"
)

// Database is a connectable handle to the board's local storage.
type Database interface {
	Connect() error
	Close() error
	DB() *sql.DB
}
