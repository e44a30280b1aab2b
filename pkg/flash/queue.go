package flash

import "sync"

// Queue is an in-process message queue for sessions without cookies, such as
// the command line editor.
type Queue struct {
	mu       sync.Mutex
	messages []string
}

// SetForNextPageLoad appends a message.
func (q *Queue) SetForNextPageLoad(message string) {
	if message == "" {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages = append(q.messages, message)
}

// Drain returns the queued messages and empties the queue.
func (q *Queue) Drain() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.messages
	q.messages = nil
	return out
}
