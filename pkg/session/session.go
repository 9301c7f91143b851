// Package session keeps conversations and their poster items in memory for the lifetime of the
// process.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrItemNotFound         = errors.New("item not found")
)

// Status is the progress of a poster item.
type Status string

const (
	StatusPending  Status = "pending"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
)

// Item is one poster request within a conversation.
type Item struct {
	ID            string     `json:"id"`
	Query         string     `json:"query"`
	Language      string     `json:"language"`
	Status        Status     `json:"status"`
	Theme         string     `json:"theme,omitempty"`
	EnglishText   string     `json:"englishText,omitempty"`
	TeluguText    string     `json:"teluguText,omitempty"`
	PosterDataURI string     `json:"posterDataUri,omitempty"`
	Filename      string     `json:"filename,omitempty"`
	Error         string     `json:"error,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// Conversation groups the items produced from one chat thread.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	Items     []Item    `json:"items"`
}

// Summary is a conversation without its items.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	ItemCount int       `json:"itemCount"`
}

// Store is a concurrency-safe in-memory conversation store. Values handed out are copies.
type Store struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
	now           func() time.Time
}

func NewStore() *Store {
	return &Store{
		conversations: map[string]*Conversation{},
		now:           time.Now,
	}
}

func copyConversation(conv *Conversation) Conversation {
	result := *conv
	result.Items = append([]Item{}, conv.Items...)
	return result
}

// Create starts a new conversation with the given title.
func (s *Store) Create(title string) Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := &Conversation{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: s.now(),
		Items:     []Item{},
	}
	s.conversations[conv.ID] = conv
	return copyConversation(conv)
}

// Get returns a conversation by ID.
func (s *Store) Get(id string) (Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok {
		return Conversation{}, errors.Wrapf(ErrConversationNotFound, "Get: %s", id)
	}
	return copyConversation(conv), nil
}

// List returns summaries of every conversation, newest first.
func (s *Store) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := lo.MapToSlice(s.conversations, func(_ string, conv *Conversation) Summary {
		return Summary{ID: conv.ID, Title: conv.Title, CreatedAt: conv.CreatedAt, ItemCount: len(conv.Items)}
	})
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].ID < summaries[j].ID
		}
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries
}

// Delete removes a conversation.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[id]; !ok {
		return errors.Wrapf(ErrConversationNotFound, "Delete: %s", id)
	}
	delete(s.conversations, id)
	return nil
}

// AddItem appends a pending item for query to a conversation.
func (s *Store) AddItem(conversationID string, query string, language string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[conversationID]
	if !ok {
		return Item{}, errors.Wrapf(ErrConversationNotFound, "AddItem: %s", conversationID)
	}
	item := Item{
		ID:        uuid.NewString(),
		Query:     query,
		Language:  language,
		Status:    StatusPending,
		CreatedAt: s.now(),
	}
	conv.Items = append(conv.Items, item)
	return item, nil
}

// GetItem returns a single item.
func (s *Store) GetItem(conversationID string, itemID string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[conversationID]
	if !ok {
		return Item{}, errors.Wrapf(ErrConversationNotFound, "GetItem: %s", conversationID)
	}
	item, ok := lo.Find(conv.Items, func(item Item) bool { return item.ID == itemID })
	if !ok {
		return Item{}, errors.Wrapf(ErrItemNotFound, "GetItem: %s", itemID)
	}
	return item, nil
}

// UpdateItem applies fn to an item in place and returns the updated copy. Terminal statuses get
// a completion time.
func (s *Store) UpdateItem(conversationID string, itemID string, fn func(item *Item)) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[conversationID]
	if !ok {
		return Item{}, errors.Wrapf(ErrConversationNotFound, "UpdateItem: %s", conversationID)
	}
	_, idx, ok := lo.FindIndexOf(conv.Items, func(item Item) bool { return item.ID == itemID })
	if !ok {
		return Item{}, errors.Wrapf(ErrItemNotFound, "UpdateItem: %s", itemID)
	}

	item := &conv.Items[idx]
	fn(item)
	if item.Status != StatusPending && item.CompletedAt == nil {
		completed := s.now()
		item.CompletedAt = &completed
	}
	return *item, nil
}
