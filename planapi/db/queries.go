package db

import (
	"database/sql"
	"time"

	"github.com/MaluSegGar/datacube-dataset-config/model"
	"github.com/venicegeo/geojson-go/geojson"
)

// InsertTileJobs records every tile of a plan in the ledger. Re-planning the
// same tile for the same start time is a no-op rather than an error, since
// the output path is the unique identity of a job.
func InsertTileJobs(tx *sql.Tx, storageType string, plan *model.TilePlan) error {
	stmt, err := tx.Prepare(`
		INSERT INTO public.tile_jobs
		(output_path, tile_x, tile_y, start_time, storage_type, left_bound, bottom_bound, right_bound, top_bound)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (output_path) DO NOTHING`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, tile := range plan.Tiles {
		_, err = stmt.Exec(
			tile.OutputPath,
			tile.Index.X, tile.Index.Y,
			tile.StartTime,
			storageType,
			tile.Bounds.Left, tile.Bounds.Bottom, tile.Bounds.Right, tile.Bounds.Top,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetTileJob looks up one recorded job by its output path
func GetTileJob(tx *sql.Tx, outputPath string) (*TileJob, error) {
	rows, err := tx.Query(`
		SELECT output_path, tile_x, tile_y, start_time, storage_type,
		       left_bound, bottom_bound, right_bound, top_bound, created_at
		FROM public.tile_jobs
		WHERE output_path=$1
		LIMIT 1`,
		outputPath,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, sql.ErrNoRows
	}

	job := TileJob{}
	err = rows.Scan(&job.OutputPath, &job.TileX, &job.TileY, &job.StartTime, &job.StorageType,
		&job.Left, &job.Bottom, &job.Right, &job.Top, &job.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &job, nil
}

// SearchTileJobs lists recorded jobs whose footprints intersect the bounding
// box, newest first. A zero since time means no lower time bound.
func SearchTileJobs(tx *sql.Tx, bbox geojson.BoundingBox, since time.Time) ([]TileJob, error) {
	rows, err := tx.Query(`
		SELECT output_path, tile_x, tile_y, start_time, storage_type,
		       left_bound, bottom_bound, right_bound, top_bound, created_at
		FROM public.tile_jobs
		WHERE left_bound < $3 AND right_bound > $1
		  AND bottom_bound < $4 AND top_bound > $2
		  AND created_at >= $5
		ORDER BY created_at DESC, output_path`,
		bbox[0], bbox[1], bbox[2], bbox[3], since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []TileJob{}
	for rows.Next() {
		job := TileJob{}
		err = rows.Scan(&job.OutputPath, &job.TileX, &job.TileY, &job.StartTime, &job.StorageType,
			&job.Left, &job.Bottom, &job.Right, &job.Top, &job.CreatedAt)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}
