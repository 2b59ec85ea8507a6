package world

// Tile is the terrain of one map cell.
type Tile uint8

const (
	Wall Tile = iota
	Floor
	DownStairs
)

type tileProps struct {
	walkable    bool
	transparent bool
	glyph       rune
}

var tiles = map[Tile]tileProps{
	Wall:       {walkable: false, transparent: false, glyph: '#'},
	Floor:      {walkable: true, transparent: true, glyph: '.'},
	DownStairs: {walkable: true, transparent: true, glyph: '>'},
}

// Walkable reports whether actors may stand on t.
func (t Tile) Walkable() bool { return tiles[t].walkable }

// Transparent reports whether t lets light through.
func (t Tile) Transparent() bool { return tiles[t].transparent }

// Glyph returns the display character of t.
func (t Tile) Glyph() rune { return tiles[t].glyph }
