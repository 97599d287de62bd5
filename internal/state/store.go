package state

// Store is the single context object holding every store. It is constructed
// once at process start and injected into the action layer and the view;
// stores live for the process lifetime with no explicit teardown.
type Store struct {
	hub *Hub

	Search   *SearchStore
	Chat     *ChatStore
	Location *LocationStore
	User     *UserStore
}

// New creates the full store set over one shared notification hub.
func New() *Store {
	hub := NewHub()
	return &Store{
		hub:      hub,
		Search:   NewSearchStore(hub),
		Chat:     NewChatStore(hub),
		Location: NewLocationStore(hub),
		User:     NewUserStore(hub),
	}
}

// Batch applies a group of mutations as one atomic notification: observers
// are notified once per changed cell, after fn returns.
func (s *Store) Batch(fn func()) {
	s.hub.Batch(fn)
}
