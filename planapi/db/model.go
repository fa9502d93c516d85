package db

import (
	"database/sql"
	"time"

	"github.com/MaluSegGar/datacube-dataset-config/util"
)

// ConnectionProvider is a function that can provide a database connection
type ConnectionProvider func(util.LogContext) (*sql.DB, error)

// TileJob is one recorded tile-ingestion job: a planned output tile that has
// been handed to the downstream executor
type TileJob struct {
	OutputPath  string
	TileX       int
	TileY       int
	StartTime   time.Time
	StorageType string
	Left        float64
	Bottom      float64
	Right       float64
	Top         float64
	CreatedAt   time.Time
}
