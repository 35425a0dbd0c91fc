// Package db embeds the SQL migrations for builds tagged embed_migrations.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
