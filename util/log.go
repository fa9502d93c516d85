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
	"net/http"

	"github.com/sirupsen/logrus"
)

// Severity is the audit severity of a log message
type Severity string

// Audit severities
const (
	INFO  Severity = "Informational"
	WARN  Severity = "Warning"
	ERROR Severity = "Error"
)

// LogContext provides identifying information for log entries
type LogContext interface {
	AppName() string
	SessionID() string
}

// BasicLogContext is a minimal LogContext for processes without
// a more specific context of their own
type BasicLogContext struct {
	sessionID string
}

// AppName returns the planner application name
func (c *BasicLogContext) AppName() string {
	return "dc-ingest-planner"
}

// SessionID returns a session ID, creating one if needed
func (c *BasicLogContext) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = PsuUUID()
	}
	return c.sessionID
}

func contextLogger(ctx LogContext) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"app":     ctx.AppName(),
		"session": ctx.SessionID(),
	})
}

// LogInfo logs an informational message
func LogInfo(ctx LogContext, message string) {
	contextLogger(ctx).Info(message)
}

// LogAlert logs a warning that needs attention but is not an error
func LogAlert(ctx LogContext, message string) {
	contextLogger(ctx).Warn(message)
}

// LogSimpleErr logs an error with a human-readable summary and returns an
// error wrapping both, suitable for returning up the stack
func LogSimpleErr(ctx LogContext, message string, err error) error {
	contextLogger(ctx).WithError(err).Error(message)
	return &Error{SimpleMsg: message, wrapped: err}
}

// LogAuditInput is the set of fields for an audit log entry
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

// LogAudit writes an actor/action/actee audit record
func LogAudit(ctx LogContext, input LogAuditInput) {
	entry := contextLogger(ctx).WithFields(logrus.Fields{
		"actor":  input.Actor,
		"action": input.Action,
		"actee":  input.Actee,
	})
	switch input.Severity {
	case ERROR:
		entry.Error(input.Message)
	case WARN:
		entry.Warn(input.Message)
	default:
		entry.Info(input.Message)
	}
}

// Error is an error with a short summary plus an optional longer
// response payload for debugging
type Error struct {
	SimpleMsg string
	Response  string
	wrapped   error
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return e.SimpleMsg + ": " + e.wrapped.Error()
	}
	return e.SimpleMsg
}

// Log records this error against the given context and returns it
func (e *Error) Log(ctx LogContext, message string) error {
	if message == "" {
		message = e.SimpleMsg
	}
	entry := contextLogger(ctx)
	if e.Response != "" {
		entry = entry.WithField("response", e.Response)
	}
	entry.Error(message)
	return e
}

// HTTPError logs an error and writes it to the response with the given status
func HTTPError(r *http.Request, w http.ResponseWriter, ctx LogContext, message string, status int) {
	contextLogger(ctx).WithFields(logrus.Fields{
		"status": status,
		"path":   r.URL.Path,
	}).Error(message)
	http.Error(w, message, status)
}
