// Package sql embeds the schema migrations and the hand-written queries.
package sql

import (
	"embed"
)

//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/insert_run.sql
var InsertRun string

//go:embed queries/list_runs.sql
var ListRuns string

//go:embed queries/delete_run.sql
var DeleteRun string
