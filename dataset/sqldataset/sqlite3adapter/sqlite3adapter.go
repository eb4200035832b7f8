/*
Package sqlite3adapter provides a sqldataset.Adapter for SQLite3
database files.
*/
package sqlite3adapter

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/tushushu/smartcore/dataset/sqldataset"

	// Registers the sqlite3 driver with database/sql.
	_ "github.com/mattn/go-sqlite3"
)

type adapter struct {
	db *sql.DB
}

/*
New takes the filepath to an SQLite3 database file and a maximum number
of open connections (0 for no limit) and returns a sqldataset.Adapter
working on the file, or an error if it cannot be opened.
*/
func New(filepath string, maxConns int) (sqldataset.Adapter, error) {
	db, err := sql.Open("sqlite3", filepath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite3 database at %s: %v", filepath, err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) Quote(identifier string) string {
	return fmt.Sprintf("%q", strings.Replace(identifier, `"`, "", -1))
}
