package world

import "fmt"

// MinRoomSize is the smallest room edge that still leaves one inner floor
// tile between its walls.
const MinRoomSize = 2

// MapParams sizes one generated floor.
type MapParams struct {
	Width       int `mapstructure:"width"`
	Height      int `mapstructure:"height"`
	MaxRooms    int `mapstructure:"max_rooms"`
	RoomMinSize int `mapstructure:"room_min_size"`
	RoomMaxSize int `mapstructure:"room_max_size"`
}

// Validate checks that rooms can fit on the map.
func (p MapParams) Validate() error {
	switch {
	case p.Width < 3 || p.Height < 3:
		return fmt.Errorf("map %dx%d is too small", p.Width, p.Height)
	case p.MaxRooms < 1:
		return fmt.Errorf("max_rooms must be >= 1")
	case p.RoomMinSize < MinRoomSize || p.RoomMinSize > p.RoomMaxSize:
		return fmt.Errorf("room sizes must satisfy %d <= min <= max; got %d..%d", MinRoomSize, p.RoomMinSize, p.RoomMaxSize)
	case p.RoomMaxSize >= p.Width-1 || p.RoomMaxSize >= p.Height-1:
		return fmt.Errorf("room_max_size %d does not fit a %dx%d map", p.RoomMaxSize, p.Width, p.Height)
	}
	return nil
}

// GameWorld counts floors and chooses the map size of the next one.
type GameWorld struct {
	CurrentFloor int
	BigFloor     int
	Little       MapParams
	Big          MapParams
}

// Advance moves to the next floor and returns its number and map size.
// Every BigFloor-th floor uses the big map.
//
// Postcondition: CurrentFloor is incremented by one.
func (w *GameWorld) Advance() (int, MapParams) {
	w.CurrentFloor++
	if w.BigFloor > 0 && w.CurrentFloor%w.BigFloor == 0 {
		return w.CurrentFloor, w.Big
	}
	return w.CurrentFloor, w.Little
}
