package queue

// Queue represents a basic queue.
// Implementations must be safe for use by multiple goroutines.
type Queue interface {
	// Enqueue adds an item to the end of the queue.
	// It never blocks and returns an error if the queue is full.
	Enqueue(item interface{}) error
	// Size returns the number of pending items.
	Size() int
	// ReadAllMessages drains and returns all pending items in order.
	ReadAllMessages() ([]interface{}, error)
	// ClearQueue discards all pending items.
	ClearQueue()
}
