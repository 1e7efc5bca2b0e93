package core

// Room groups the peers eligible to be notified about each other. A room
// lives in the hub's registry exactly as long as it has members; callers
// hold the hub lock for every access.
type Room struct {
	ID      string
	members map[string]*Client
}

func newRoom(id string) *Room {
	return &Room{
		ID:      id,
		members: make(map[string]*Client),
	}
}

func (r *Room) add(c *Client) {
	r.members[c.ID] = c
}

func (r *Room) remove(id string) {
	delete(r.members, id)
}

func (r *Room) empty() bool {
	return len(r.members) == 0
}
