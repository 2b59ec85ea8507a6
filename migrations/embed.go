// Package migrations holds the PostgreSQL schema for the saves backend.
package migrations

import "embed"

// FS contains the numbered up and down migrations.
//
//go:embed *.sql
var FS embed.FS
