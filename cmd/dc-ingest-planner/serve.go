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
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MaluSegGar/datacube-dataset-config/planapi"
	"github.com/MaluSegGar/datacube-dataset-config/planapi/db"
	"github.com/MaluSegGar/datacube-dataset-config/util"

	_ "github.com/lib/pq"
	cli "gopkg.in/urfave/cli.v1"
)

func createRouter(ctx util.LogContext, connectionProvider db.ConnectionProvider) (*mux.Router, error) {
	router := mux.NewRouter()
	router.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte("OK"))
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/plan/validate", planapi.NewValidateHandler()).Methods("POST")

	if planComputeHandler, err := planapi.NewComputeHandler(connectionProvider); err == nil {
		router.Handle("/plan/compute", planComputeHandler).Methods("POST")
	} else {
		return nil, err
	}

	if connectionProvider != nil {
		if planJobsHandler, err := planapi.NewJobsHandler(connectionProvider); err == nil {
			router.Handle("/plan/jobs", planJobsHandler).Methods("GET")
		} else {
			return nil, err
		}
	}

	return router, nil
}

func serveAction(*cli.Context) {
	logContext := &(util.BasicLogContext{})

	portStr := util.GetPortStr()

	// The job ledger is optional for serving; without a database the
	// planner still validates and computes, it just records nothing.
	var connectionProvider db.ConnectionProvider
	if os.Getenv(util.DatabaseURLEnv) != "" || os.Getenv(util.VcapServicesEnv) != "" {
		connectionProvider = getDbConnectionFunc
	} else {
		util.LogAlert(logContext, "No database configured; tile jobs will not be recorded")
	}

	if router, err := createRouter(logContext, connectionProvider); err == nil {
		util.LogInfo(logContext, fmt.Sprintf("Listening on %s", portStr))
		launchServerFunc(portStr, router)
	} else {
		util.LogSimpleErr(logContext, "Failed to create router: ", err)
	}
}

var launchServerFunc = launchServer

func launchServer(portStr string, router *mux.Router) {
	server := http.Server{
		Addr:    portStr,
		Handler: router,
	}

	log.Fatal(server.ListenAndServe())
}
