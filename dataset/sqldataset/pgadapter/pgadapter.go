/*
Package pgadapter provides a sqldataset.Adapter for PostgreSQL
databases.
*/
package pgadapter

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/tushushu/smartcore/dataset/sqldataset"

	// Registers the postgres driver with database/sql.
	_ "github.com/lib/pq"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL connection URL and a maximum number of open
connections (0 for no limit) and returns a sqldataset.Adapter working
on the database it points to, or an error if the connection cannot be
opened.
*/
func New(dbURL string, maxConns int) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("opening postgresql database: %v", err)
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
