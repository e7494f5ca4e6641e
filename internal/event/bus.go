// Package event provides the host event bus the script bridge posts to, plus
// the payload types the host owns after a post.
package event

// Kind identifies a host event.
type Kind string

const (
	// AddBookmark carries a Bookmark payload.
	AddBookmark Kind = "add_bookmark"

	// AppendPatternLanguageCode carries one complete pattern-language
	// declaration as a string payload.
	AppendPatternLanguageCode Kind = "append_pattern_language_code"
)

// Handler consumes one posted payload. Ownership of the payload transfers to
// the handler side; posters must not read or mutate it afterwards.
type Handler func(payload interface{})

// Bus is a synchronous in-process event bus. Dispatch happens immediately on
// the posting goroutine, so consumption order equals post order. Script
// execution and host consumption are serialized by the host's own dispatch;
// the bus performs no locking of its own.
type Bus struct {
	handlers map[Kind][]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Kind][]Handler)}
}

// Subscribe registers a handler for a kind. Handlers run in subscription order.
func (b *Bus) Subscribe(kind Kind, h Handler) {
	b.handlers[kind] = append(b.handlers[kind], h)
}

// Post dispatches payload to every handler subscribed to kind before
// returning. Posting a kind nobody subscribed to is a no-op.
func (b *Bus) Post(kind Kind, payload interface{}) {
	for _, h := range b.handlers[kind] {
		h(payload)
	}
}
