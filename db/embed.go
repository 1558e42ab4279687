// Package db carries the Postgres schema migrations.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
