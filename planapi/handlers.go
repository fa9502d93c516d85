package planapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MaluSegGar/datacube-dataset-config/ingest"
	"github.com/MaluSegGar/datacube-dataset-config/model"
	"github.com/MaluSegGar/datacube-dataset-config/planapi/db"
	"github.com/MaluSegGar/datacube-dataset-config/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// ValidateHandler is a handler for /plan/validate
// @Title planValidateHandler
// @Description validates an ingestion configuration document
// @Accept  yaml
// @Success 200 {object}  ValidationReport
// @Failure 400 {object}  string
// @Router /plan/validate [post]
type ValidateHandler struct {
	Context Context
}

// ValidationReport is the response body of the validate endpoint
type ValidationReport struct {
	Valid      bool             `json:"valid"`
	Violations []ViolationEntry `json:"violations"`
}

// ViolationEntry is one violation in a ValidationReport
type ViolationEntry struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// NewValidateHandler creates a new handler; validation needs no database
func NewValidateHandler() *ValidateHandler {
	return &ValidateHandler{Context: Context{}}
}

// ServeHTTP implements the http.Handler interface for the ValidateHandler type
func (h ValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cfg, err := ingest.ParseConfig(r.Body)
	if err != nil {
		message := fmt.Sprintf("Could not parse config document: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}

	report := ValidationReport{Violations: []ViolationEntry{}}
	for _, violation := range ingest.Validate(cfg) {
		report.Violations = append(report.Violations, ViolationEntry{
			Field:  violation.Field,
			Reason: violation.Reason,
		})
	}
	report.Valid = len(report.Violations) == 0
	if !report.Valid {
		validationFailures.Inc()
	}

	writeJSON(w, &h.Context, r, report)
}

// ComputeHandler is a handler for /plan/compute
// @Title planComputeHandler
// @Description computes the tile plan for a config document and bounding box
// @Accept  yaml
// @Param   bbox        query   string  false        "The bounding box, as a GeoJSON bounding box (x1,y1,x2,y2); defaults to the config's ingestion bounds"
// @Param   start_time  query   string  false        "The plan's start time; defaults to now"
// @Success 200 {object}  geojson.FeatureCollection
// @Failure 400 {object}  string
// @Router /plan/compute [post]
type ComputeHandler struct {
	Context Context
}

// NewComputeHandler creates a new handler. The connection provider may be
// nil, in which case computed plans are not recorded in the job ledger.
func NewComputeHandler(connectionProvider db.ConnectionProvider) (*ComputeHandler, error) {
	handler := ComputeHandler{Context: Context{}}

	if connectionProvider != nil {
		conn, err := connectionProvider(&util.BasicLogContext{})
		if err != nil {
			return nil, err
		}
		handler.Context.DB = conn
	}

	return &handler, nil
}

// ServeHTTP implements the http.Handler interface for the ComputeHandler type
func (h ComputeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cfg, err := ingest.LoadConfig(r.Body)
	if err != nil {
		message := fmt.Sprintf("Invalid config document: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		validationFailures.Inc()
		return
	}

	var requested *ingest.Bounds
	if r.FormValue("bbox") != "" {
		bbox, err := geojson.NewBoundingBox(r.FormValue("bbox"))
		if err != nil {
			message := fmt.Sprintf("The bbox value of %v is invalid", r.FormValue("bbox"))
			util.LogSimpleErr(&h.Context, message, err)
			util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
			return
		}
		requested = &ingest.Bounds{Left: bbox[0], Bottom: bbox[1], Right: bbox[2], Top: bbox[3]}
	}

	startTime := time.Now().UTC()
	if r.FormValue("start_time") != "" {
		if startTime, err = model.ParseFlexibleTime(r.FormValue("start_time")); err != nil {
			message := fmt.Sprintf("Start time value of %v is invalid.", r.FormValue("start_time"))
			util.LogSimpleErr(&h.Context, message, err)
			util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
			return
		}
	}

	grid, err := ingest.NewTileGrid(cfg, requested)
	if err != nil {
		message := fmt.Sprintf("Could not plan tile grid: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}

	plan, err := model.NewTilePlan(cfg, grid, startTime)
	if err != nil {
		message := fmt.Sprintf("Could not compute tile plan: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}

	if h.Context.DB != nil {
		if err = h.recordPlan(cfg.OutputType, plan); err != nil {
			message := fmt.Sprintf("Error recording tile jobs: %v", err)
			util.LogSimpleErr(&h.Context, message, err)
			util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
			return
		}
	}

	featureCollection, err := plan.GeoJSONFeatureCollection()
	if err != nil {
		message := fmt.Sprintf("Error converting plan to feature collection: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}

	plansComputed.Inc()
	tilesPlanned.Add(float64(len(plan.Tiles)))
	w.Write([]byte(featureCollection.String()))
}

func (h ComputeHandler) recordPlan(storageType string, plan *model.TilePlan) error {
	tx, err := h.Context.DB.Begin()
	if err != nil {
		return err
	}

	if err = db.InsertTileJobs(tx, storageType, plan); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// JobsHandler is a handler for /plan/jobs
// @Title planJobsHandler
// @Description lists recorded tile jobs intersecting a bounding box
// @Param   bbox   query   string  true         "The bounding box, as a GeoJSON bounding box (x1,y1,x2,y2)"
// @Param   since  query   string  false        "Only list jobs recorded at or after this time"
// @Success 200 {array}   db.TileJob
// @Failure 400 {object}  string
// @Router /plan/jobs [get]
type JobsHandler struct {
	Context Context
}

// NewJobsHandler creates a new handler using the given connection provider
func NewJobsHandler(connectionProvider db.ConnectionProvider) (*JobsHandler, error) {
	conn, err := connectionProvider(&util.BasicLogContext{})
	if err != nil {
		return nil, err
	}
	return &JobsHandler{Context: Context{DB: conn}}, nil
}

// ServeHTTP implements the http.Handler interface for the JobsHandler type
func (h JobsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	bbox, err := geojson.NewBoundingBox(r.FormValue("bbox"))
	if err != nil {
		message := fmt.Sprintf("The bbox value of %v is invalid", r.FormValue("bbox"))
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}

	since := time.Unix(0, 0)
	if r.FormValue("since") != "" {
		if since, err = model.ParseFlexibleTime(r.FormValue("since")); err != nil {
			message := fmt.Sprintf("Since value of %v is invalid.", r.FormValue("since"))
			util.LogSimpleErr(&h.Context, message, err)
			util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
			return
		}
	}

	tx, err := h.Context.DB.Begin()
	if err != nil {
		message := fmt.Sprintf("Could not begin DB transaction: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	defer tx.Commit()

	jobs, err := db.SearchTileJobs(tx, bbox, since)
	if err != nil {
		message := fmt.Sprintf("Error searching for tile jobs: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}

	writeJSON(w, &h.Context, r, jobs)
}

func writeJSON(w http.ResponseWriter, ctx *Context, r *http.Request, payload interface{}) {
	buf := bytes.Buffer{}
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		message := fmt.Sprintf("Error encoding response: %v", err)
		util.LogSimpleErr(ctx, message, err)
		util.HTTPError(r, w, ctx, message, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(buf.Bytes())
}
