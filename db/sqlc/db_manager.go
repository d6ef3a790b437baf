package sqlc

import (
	"database/sql"
	"time"

	"github.com/sqlc-dev/pqtype"
)

const (
	QuerierCtxTimeout = time.Second * 10
)

type DbManager struct {
	Results *ResultsManager
}

func NewDbManager(db *sql.DB, serverIp pqtype.Inet) DbManager {
	return DbManager{
		Results: NewResultsManager(db, serverIp),
	}
}
