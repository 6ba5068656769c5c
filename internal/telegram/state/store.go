package state

import (
	"strconv"
	"sync"
	"time"

	"github.com/futig/ums-chatbot/internal/usecase/chat"
	"github.com/patrickmn/go-cache"
)

// ConversationFactory creates a fresh conversation for a chat
type ConversationFactory func() *chat.Conversation

// Store keeps one volatile conversation per Telegram chat. Idle conversations
// expire after ttl and are lost on restart.
type Store struct {
	mu              sync.Mutex
	cache           *cache.Cache
	newConversation ConversationFactory
}

func NewStore(ttl time.Duration, factory ConversationFactory) *Store {
	return &Store{
		cache:           cache.New(ttl, ttl),
		newConversation: factory,
	}
}

// Get returns the chat's conversation, creating it when missing. created
// reports whether a new conversation was started.
func (s *Store) Get(chatID int64) (conv *chat.Conversation, created bool) {
	key := strconv.FormatInt(chatID, 10)

	s.mu.Lock()
	defer s.mu.Unlock()

	if item, found := s.cache.Get(key); found {
		conv = item.(*chat.Conversation)
		// Touch to extend the idle timeout
		s.cache.SetDefault(key, conv)
		return conv, false
	}

	conv = s.newConversation()
	s.cache.SetDefault(key, conv)
	return conv, true
}

// Reset replaces the chat's conversation with a new one
func (s *Store) Reset(chatID int64) *chat.Conversation {
	key := strconv.FormatInt(chatID, 10)

	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.newConversation()
	s.cache.SetDefault(key, conv)
	return conv
}

// Count returns the number of live conversations
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
