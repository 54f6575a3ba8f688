package manager

import "fmt"

// Router is the frame's work queue. Handlers may emit follow-up events,
// which are handled in the next round of the same drain.
type Router struct {
	queue     []Event
	maxRounds int
}

func NewRouter(maxRounds int) *Router {
	return &Router{maxRounds: maxRounds}
}

func (r *Router) Push(events ...Event) {
	r.queue = append(r.queue, events...)
}

func (r *Router) Len() int {
	return len(r.queue)
}

// Drain handles events until the queue is empty and returns how many were
// handled. It panics when the queue is still not empty after maxRounds.
func (r *Router) Drain(handle func(Event) []Event) int {

	handled := 0

	for round := 0; len(r.queue) > 0; round++ {

		if round >= r.maxRounds {
			panic(fmt.Sprintf("event queue did not settle after %d rounds, %d events pending, next %T", r.maxRounds, len(r.queue), r.queue[0]))
		}

		batch := r.queue
		r.queue = nil

		for _, ev := range batch {
			r.queue = append(r.queue, handle(ev)...)
			handled++
		}
	}

	return handled
}
