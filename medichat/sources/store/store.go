package store

import (
	"encoding/json"
	"errors"

	"medichat/medichat/conversation"
	"medichat/medichat/utils/logging"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// Keys mirror the ones the web client used, so a dump of either store is
// directly comparable.
const (
	conversationsKey = "chatConversations"
	currentIDKey     = "currentConversationId"
)

// BadgerStore implements conversation.Store on top of a badger DB. The
// conversation collection is stored as one JSON array blob, overwritten in
// full on every save.
type BadgerStore struct {
	db *badger.DB
}

func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Load reads both keys. Any read or parse failure is recoverable: it is
// logged and reported as "no prior state", never as fatal.
func (s *BadgerStore) Load() ([]conversation.Conversation, string, bool) {
	var raw []byte
	var currentID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(conversationsKey))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if item, err := txn.Get([]byte(currentIDKey)); err == nil {
			id, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			currentID = string(id)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.ErrorLogger.Error("store load error", zap.Error(err))
		}
		return nil, "", false
	}
	var convs []conversation.Conversation
	if err := json.Unmarshal(raw, &convs); err != nil {
		logging.ErrorLogger.Error("store parse error, discarding persisted state", zap.Error(err))
		return nil, "", false
	}
	return convs, currentID, true
}

func (s *BadgerStore) Save(convs []conversation.Conversation) error {
	raw, err := json.Marshal(convs)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(conversationsKey), raw)
	})
}

func (s *BadgerStore) SaveCurrentID(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(currentIDKey), []byte(id))
	})
}
