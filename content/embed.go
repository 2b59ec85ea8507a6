// Package content embeds the default game data: item and enemy templates,
// the player template, spawn tables, AI domains and Lua precondition scripts.
package content

import "embed"

// FS holds every embedded content file.
//
//go:embed items/*.yaml enemies/*.yaml ai/*.yaml scripts/*.lua player.yaml spawn.yaml
var FS embed.FS

const (
	ItemsDir   = "items"
	EnemiesDir = "enemies"
	AIDir      = "ai"
	ScriptsDir = "scripts"
	PlayerFile = "player.yaml"
	SpawnFile  = "spawn.yaml"
)
