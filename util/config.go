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

package util

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Environment variables
const (
	DatabaseURLEnv  = "DATABASE_URL"
	VcapServicesEnv = "VCAP_SERVICES"
	PortEnv         = "PORT"
	PlannerDebugEnv = "PLANNER_DEBUG"
)

// GetPortStr returns the listen address from the PORT environment
// variable, defaulting to :8080
func GetPortStr() string {
	if port, ok := os.LookupEnv(PortEnv); ok {
		return ":" + port
	}
	return ":8080"
}

// IsDebugEnabled returns true if PLANNER_DEBUG is set to a truthy value
func IsDebugEnabled() bool {
	debug, _ := strconv.ParseBool(os.Getenv(PlannerDebugEnv))
	return debug
}

// ConfigureLogging sets the global log level from the environment
func ConfigureLogging() {
	if IsDebugEnabled() {
		logrus.SetLevel(logrus.DebugLevel)
	}
}
