// Package armsim holds resources shared by the binaries of the arm simulator.
package armsim

import "embed"

// Migrations contains the goose SQL migrations of the simulations database.
//
//go:embed migrations/*.sql
var Migrations embed.FS
