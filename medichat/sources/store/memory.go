package store

import "medichat/medichat/conversation"

// MemoryStore keeps snapshots in memory for contexts where no local storage
// is available yet. Observable behavior matches BadgerStore; nothing
// survives a restart.
type MemoryStore struct {
	convs     []conversation.Conversation
	currentID string
	loaded    bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() ([]conversation.Conversation, string, bool) {
	if !s.loaded {
		return nil, "", false
	}
	return s.convs, s.currentID, true
}

func (s *MemoryStore) Save(convs []conversation.Conversation) error {
	s.convs = append([]conversation.Conversation(nil), convs...)
	s.loaded = true
	return nil
}

func (s *MemoryStore) SaveCurrentID(id string) error {
	s.currentID = id
	return nil
}
