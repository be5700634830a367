// Package chat keeps the in-memory transcript of the astrologer chat.
// The transcript lives only for the process lifetime; nothing here is
// persisted.
package chat

import (
	"sync"
	"time"
)

// Author identifies who wrote a transcript entry.
type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

// Entry is one turn of the conversation.
type Entry struct {
	Content string
	Author  Author
	At      time.Time
}

// Transcript is an append-only ordered sequence of entries.
type Transcript struct {
	mu      sync.Mutex
	entries []Entry
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append records a new entry, stamping it with the current time, and
// returns it.
func (t *Transcript) Append(author Author, content string) Entry {
	e := Entry{Content: content, Author: author, At: time.Now()}
	t.mu.Lock()
	t.entries = append(t.entries, e)
	t.mu.Unlock()
	return e
}

// Entries returns a copy of the transcript in append order.
func (t *Transcript) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Entry(nil), t.entries...)
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
