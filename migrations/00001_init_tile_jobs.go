package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00001, Down00001)
}

// Up00001 creates the tile job ledger
func Up00001(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE public.tile_jobs
		(
			output_path text COLLATE pg_catalog."default" NOT NULL,
			tile_x integer NOT NULL,
			tile_y integer NOT NULL,
			start_time timestamp without time zone NOT NULL,
			storage_type text COLLATE pg_catalog."default" NOT NULL,
			left_bound double precision NOT NULL,
			bottom_bound double precision NOT NULL,
			right_bound double precision NOT NULL,
			top_bound double precision NOT NULL,
			created_at timestamp without time zone NOT NULL DEFAULT now(),
			CONSTRAINT "tile_jobs_pk_outputPath" PRIMARY KEY (output_path)
		)
		WITH (
			OIDS = FALSE
		);

		CREATE INDEX idx_tile_jobs_index
		ON public.tile_jobs (tile_x, tile_y);

		CREATE INDEX idx_tile_jobs_created_at
		ON public.tile_jobs (created_at);
		`)
	return err
}

// Down00001 undoes the db changes
func Down00001(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS public.tile_jobs;`)
	return err
}
