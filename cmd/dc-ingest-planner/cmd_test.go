// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"io/ioutil"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

const testConfigYAML = `
source_type: ls7_ledaps_scene
output_type: ls7_ledaps_tiled
file_path_template: "LS7_ETM_LEDAPS_{tile_index[0]}_{tile_index[1]}_{start_time}.nc"
ingestion_bounds:
  left: 142.0
  bottom: -33.0
  right: 143.0
  top: -32.0
storage:
  crs: EPSG:4326
  tile_size:
    longitude: 1.0
    latitude: 1.0
  resolution:
    longitude: 0.00025
    latitude: -0.00025
  chunking:
    longitude: 500
    latitude: 500
    time: 1
  dimension_order: [time, latitude, longitude]
measurements:
  - name: blue
    dtype: int16
    nodata: -9999
    resampling_method: nearest
    src_varname: sr_band1
    zlib: true
`

func TestMain(m *testing.M) {
	// No database in unit tests; serve must fall back to planning-only mode
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("VCAP_SERVICES")
	code := m.Run()
	os.Exit(code)
}

func TestServe_CallsLaunchServer(t *testing.T) {
	success := make(chan bool)
	launchServerFunc = func(portStr string, router *mux.Router) { // Mock
		success <- true
	}
	timer := time.NewTimer(1 * time.Second)

	go serveAction(nil)

	select {
	case <-success:
	case <-timer.C:
		assert.Fail(t, "launchServer not called within 1 second of serve()")
	}
}

func TestServe_BaseHealthCheckEndpoint(t *testing.T) {
	success := make(chan bool)
	launchServerFunc = func(portStr string, router *mux.Router) { // Mock
		req := httptest.NewRequest("GET", "/", strings.NewReader(""))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, req)
		responseBody, _ := ioutil.ReadAll(response.Result().Body)
		success <- (string(responseBody) == "OK")
	}

	timer := time.NewTimer(1 * time.Second)

	go serveAction(nil)

	select {
	case <-success:
	case <-timer.C:
		assert.Fail(t, "launchServer not called within 1 second of serve()")
	}
}

func TestServe_ComputeEndpointPlansWithoutDatabase(t *testing.T) {
	success := make(chan int)
	launchServerFunc = func(portStr string, router *mux.Router) { // Mock
		req := httptest.NewRequest("POST", "/plan/compute?start_time=2005-01-07", strings.NewReader(testConfigYAML))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, req)
		success <- response.Code
	}

	timer := time.NewTimer(1 * time.Second)

	go serveAction(nil)

	select {
	case code := <-success:
		assert.Equal(t, 200, code)
	case <-timer.C:
		assert.Fail(t, "launchServer not called within 1 second of serve()")
	}
}

func TestPlanCommand_WritesPlanFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "ls7_ledaps.yaml")
	outputPath := filepath.Join(dir, "plan.json")
	assert.Nil(t, ioutil.WriteFile(configPath, []byte(testConfigYAML), 0644))

	err := createCliApp().Run([]string{"dc-ingest-planner", "plan",
		"--config", configPath,
		"--storage_type", "ls7_ledaps_tiled",
		"--satellite", "LS7",
		"--sensors", "ETM",
		"--level", "sr_refl",
		"--tmin", "2005-01-07", "--tmax", "2005-02-07",
		"--output", outputPath,
	})
	assert.Nil(t, err)

	raw, err := ioutil.ReadFile(outputPath)
	assert.Nil(t, err)

	envelope := planEnvelope{}
	assert.Nil(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, "ls7_ledaps_tiled", envelope.Request.StorageType)
	assert.Equal(t, "LS7", envelope.Request.Satellite)
	assert.Len(t, envelope.Plan.Tiles, 1)
	assert.Equal(t, "LS7_ETM_LEDAPS_142_-33_2005-01-07.nc", envelope.Plan.Tiles[0].OutputPath)
}

func TestPlanCommand_BoundsOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "ls7_ledaps.yaml")
	outputPath := filepath.Join(dir, "plan.json")
	assert.Nil(t, ioutil.WriteFile(configPath, []byte(testConfigYAML), 0644))

	err := createCliApp().Run([]string{"dc-ingest-planner", "plan",
		"--config", configPath,
		"--xmin", "142", "--xmax", "144", "--ymin", "-33", "--ymax", "-31",
		"--tmin", "2005-01-07",
		"--output", outputPath,
	})
	assert.Nil(t, err)

	raw, err := ioutil.ReadFile(outputPath)
	assert.Nil(t, err)

	envelope := planEnvelope{}
	assert.Nil(t, json.Unmarshal(raw, &envelope))
	assert.Len(t, envelope.Plan.Tiles, 4)
}
