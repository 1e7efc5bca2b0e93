package core

// Conn is the send half of one peer connection as the hub sees it.
// Implementations must be safe for concurrent use: deliveries to a conn
// originate from whichever connection's goroutine triggered them.
type Conn interface {
	// Send encodes v as a single JSON text frame and writes it out.
	Send(v any) error
}
