package conversation

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"medichat/medichat/utils/logging"

	"go.uber.org/zap"
)

// ErrNotFound is returned when an id does not reference a known conversation
// or message.
var ErrNotFound = errors.New("conversation: not found")

// Store persists the full conversation collection and the current-selection
// pointer. Writes are full-snapshot overwrites; there is no incremental sync.
type Store interface {
	// Load returns ok=false when no usable prior state exists (absent keys or
	// a parse failure). Both cases are recoverable, never fatal.
	Load() (convs []Conversation, currentID string, ok bool)
	Save(convs []Conversation) error
	SaveCurrentID(id string) error
}

// Repository is the sole authority over the conversation collection. All
// mutations run synchronously, sync the store, and then notify subscribers.
type Repository struct {
	mu        sync.Mutex
	convs     []*Conversation
	currentID string
	store     Store
	subs      []func()
}

// NewRepository loads prior state from st (which may be nil for in-memory
// operation). If nothing usable is persisted it synthesizes one fresh
// conversation and selects it, so the collection is never empty.
func NewRepository(st Store) *Repository {
	r := &Repository{store: st}
	if st != nil {
		if convs, currentID, ok := st.Load(); ok && len(convs) > 0 {
			for i := range convs {
				c := convs[i]
				r.convs = append(r.convs, &c)
			}
			if r.byID(currentID) != nil {
				r.currentID = currentID
			} else {
				r.currentID = r.convs[0].ID
			}
			return r
		}
	}
	c := newConversation(time.Now())
	r.convs = append(r.convs, c)
	r.currentID = c.ID
	r.persist()
	return r
}

// AttachStore wires persistence in after the fact, for contexts where storage
// only becomes available later. The current state is flushed immediately so
// the observable collection is the same either way.
func (r *Repository) AttachStore(st Store) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store = st
	r.persist()
}

// Subscribe registers fn to run after every mutation. fn is invoked while
// the repository lock is held and must not call back into the repository.
func (r *Repository) Subscribe(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, fn)
}

// Create allocates a new conversation at the end of the collection without
// changing the selection.
func (r *Repository) Create() *Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := newConversation(time.Now())
	r.convs = append(r.convs, c)
	r.persist()
	r.notify()
	return c
}

// StartNew is the explicit "new chat" action: create and select.
func (r *Repository) StartNew() *Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := newConversation(time.Now())
	r.convs = append(r.convs, c)
	r.currentID = c.ID
	r.persist()
	r.notify()
	return c
}

// Select moves the current pointer. Unknown ids are rejected with ErrNotFound
// rather than leaving a dangling selection.
func (r *Repository) Select(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID(id) == nil {
		return ErrNotFound
	}
	r.currentID = id
	r.persist()
	r.notify()
	return nil
}

// Delete removes the conversation with the given id. An empty collection is
// repaired with a fresh conversation; a deleted current selection moves to
// the first remaining conversation in insertion order (not display order).
func (r *Repository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.convs[:0]
	for _, c := range r.convs {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	r.convs = kept
	if len(r.convs) == 0 {
		c := newConversation(time.Now())
		r.convs = append(r.convs, c)
		r.currentID = c.ID
	} else if r.currentID == id {
		r.currentID = r.convs[0].ID
	}
	r.persist()
	r.notify()
}

// CanDelete is the caller-side guard: the UI only offers delete while more
// than one conversation exists.
func (r *Repository) CanDelete() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.convs) > 1
}

// Rename sets the trimmed title, or a timestamp-derived fallback when the
// trimmed title is empty. A conversation is never left untitled.
func (r *Repository) Rename(id, title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byID(id)
	if c == nil {
		return
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultTitle(time.Now())
	}
	c.Title = title
	r.persist()
	r.notify()
}

// Append adds a message to the current conversation.
func (r *Repository) Append(role, content, markdown, reasoning string) *Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byID(r.currentID)
	if c == nil {
		// cannot happen while the never-empty invariant holds
		logging.ErrorLogger.Error("append with no current conversation")
		return nil
	}
	m := newMessage(role, content, markdown, reasoning, time.Now())
	c.Messages = append(c.Messages, m)
	r.persist()
	r.notify()
	return &m
}

// AppendTo adds a message to a specific conversation. The submission flow
// uses it to route a response back to the conversation it originated from,
// which may no longer be current by the time the response arrives.
func (r *Repository) AppendTo(id, role, content, markdown, reasoning string) (*Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byID(id)
	if c == nil {
		return nil, ErrNotFound
	}
	m := newMessage(role, content, markdown, reasoning, time.Now())
	c.Messages = append(c.Messages, m)
	r.persist()
	r.notify()
	return &m, nil
}

// Categorize sets the free-form classification metadata.
func (r *Repository) Categorize(id, department, category string, metrics []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byID(id)
	if c == nil {
		return ErrNotFound
	}
	c.Department = department
	c.MedicalCategory = category
	c.RelevantMetrics = metrics
	r.persist()
	r.notify()
	return nil
}

// AttachContext sets MedicalContext on the message with the given id.
// Message ids are globally unique, so the scan crosses all conversations.
func (r *Repository) AttachContext(messageID, context string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.convs {
		for i := range c.Messages {
			if c.Messages[i].ID == messageID {
				c.Messages[i].MedicalContext = context
				r.persist()
				r.notify()
				return nil
			}
		}
	}
	return ErrNotFound
}

// List returns the display ordering: most recent first.
func (r *Repository) List() []*Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Conversation, len(r.convs))
	copy(out, r.convs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

func (r *Repository) Get(id string) (*Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byID(id)
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (r *Repository) Current() *Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID(r.currentID)
}

func (r *Repository) CurrentID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentID
}

func (r *Repository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.convs)
}

func (r *Repository) byID(id string) *Conversation {
	for _, c := range r.convs {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// persist writes the full snapshot. Failures are logged and swallowed: the
// in-memory state stays authoritative and the next mutation overwrites the
// whole snapshot anyway.
func (r *Repository) persist() {
	if r.store == nil {
		return
	}
	snapshot := make([]Conversation, len(r.convs))
	for i, c := range r.convs {
		snapshot[i] = *c
	}
	if err := r.store.Save(snapshot); err != nil {
		logging.ErrorLogger.Error("conversation store save error", zap.Error(err))
	}
	if err := r.store.SaveCurrentID(r.currentID); err != nil {
		logging.ErrorLogger.Error("conversation store save current id error", zap.Error(err))
	}
}

func (r *Repository) notify() {
	for _, fn := range r.subs {
		fn()
	}
}
