package core

// Client is one registered peer: the connection it owns, the room it sits
// in, and its display name. Room and name are fixed for the life of the
// entry; a peer changes rooms by leaving and joining again.
type Client struct {
	ID   string
	Name string
	Room string

	conn Conn
}
