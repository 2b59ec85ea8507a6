package inventory

// Floor tracks the items lying on one dungeon level.
type Floor struct {
	Items []*Item
}

// NewFloor creates a Floor with no items.
func NewFloor() *Floor {
	return &Floor{}
}

// Drop places it on the floor at (x, y).
//
// Postcondition: it.X == x, it.Y == y and At(x, y) includes it.
func (f *Floor) Drop(it *Item, x, y int) {
	it.X, it.Y = x, y
	f.Items = append(f.Items, it)
}

// At returns the items lying at (x, y).
func (f *Floor) At(x, y int) []*Item {
	var out []*Item
	for _, it := range f.Items {
		if it.X == x && it.Y == y {
			out = append(out, it)
		}
	}
	return out
}

// Pickup removes and returns the item with id.
//
// Postcondition: on failure the floor is unchanged.
func (f *Floor) Pickup(id string) (*Item, bool) {
	for i, it := range f.Items {
		if it.ID == id {
			f.Items = append(f.Items[:i:i], f.Items[i+1:]...)
			return it, true
		}
	}
	return nil, false
}

// TransferToBackpack moves the floor item id into b. It is atomic: a full
// backpack or an unknown id leaves both containers unchanged.
func TransferToBackpack(f *Floor, b *Backpack, id string) (*Item, error) {
	if b.Full() {
		return nil, ErrBackpackFull
	}
	it, ok := f.Pickup(id)
	if !ok {
		return nil, ErrItemNotFound
	}
	if err := b.Add(it); err != nil {
		f.Items = append(f.Items, it)
		return nil, err
	}
	return it, nil
}

// TransferToFloor moves the held item id from b onto f at (x, y).
func TransferToFloor(b *Backpack, f *Floor, id string, x, y int) (*Item, error) {
	it, ok := b.Remove(id)
	if !ok {
		return nil, ErrItemNotFound
	}
	f.Drop(it, x, y)
	return it, nil
}
