package planapi

import (
	"database/sql"

	"github.com/MaluSegGar/datacube-dataset-config/util"
)

// Context is the context for a planning API operation
type Context struct {
	DB        *sql.DB
	sessionID string
}

// AppName returns the planner application name
func (c *Context) AppName() string {
	return "dc-ingest-planner"
}

// SessionID returns a session ID, creating one if needed
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = util.PsuUUID()
	}
	return c.sessionID
}
