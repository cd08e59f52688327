package network

import (
	"context"
	"sync"

	"go.uber.org/zap"

	apperrors "friend-network/backend/pkg/errors"
)

// MemoryStore is a thread-safe, in-memory implementation of the Store interface.
// Mutations hold the write lock for validation and both appends; reads hold
// the read lock and hand out copies.
type MemoryStore struct {
	mu     sync.RWMutex
	people map[int]*Person
	order  []int
	names  map[string]int
	nextID int
	logger *zap.Logger
}

// NewMemoryStore creates an empty store. Ids start at 1.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{
		people: make(map[int]*Person),
		names:  make(map[string]int),
		nextID: 1,
		logger: logger,
	}
}

// List returns every person in creation order
func (s *MemoryStore) List(ctx context.Context) ([]Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]Person, 0, len(s.order))
	for _, id := range s.order {
		all = append(all, s.people[id].Clone())
	}
	return all, nil
}

// Get returns the person with the given id
func (s *MemoryStore) Get(ctx context.Context, id int) (Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.people[id]
	if !ok {
		return Person{}, apperrors.NewPersonNotFound(id)
	}
	return p.Clone(), nil
}

// FriendsOfFriends walks each friend's friend list in order. A name reached
// through several mutual friends appears once per path.
func (s *MemoryStore) FriendsOfFriends(ctx context.Context, id int) (FriendsOfFriends, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.people[id]
	if !ok {
		return nil, apperrors.NewPersonNotFound(id)
	}

	result := []string{}
	for _, name := range p.Friends {
		mutual, err := s.byName(name)
		if err != nil {
			return nil, err
		}
		for _, friendOf := range mutual.Friends {
			if friendOf != p.Name {
				result = append(result, friendOf)
			}
		}
	}
	return FriendsOfFriends{p.Name: result}, nil
}

// AddFriend befriends friend to the person with the given id. An unknown
// friend is created with the next id.
func (s *MemoryStore) AddFriend(ctx context.Context, id int, friend string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.people[id]
	if !ok {
		return apperrors.NewPersonNotFound(id)
	}
	if friend == "" {
		return apperrors.ErrMissingFriend
	}
	if friend == p.Name || p.HasFriend(friend) {
		return apperrors.NewFriendConflict(id, friend)
	}
	if fid, known := s.names[friend]; known {
		other, ok := s.people[fid]
		if !ok {
			return apperrors.NewIntegrityViolation(friend)
		}
		if other.HasFriend(p.Name) {
			return apperrors.NewIntegrityViolation(friend)
		}
	}

	other := s.ensure(friend)
	p.Friends = append(p.Friends, friend)
	other.Friends = append(other.Friends, p.Name)

	s.logger.Info("Friend added",
		zap.Int("person_id", id),
		zap.String("person", p.Name),
		zap.String("friend", friend),
		zap.Int("friend_id", other.ID),
	)
	return nil
}

// RemoveFriend removes the friendship between the person and friend. Both
// people are kept even if they end up with no friends.
func (s *MemoryStore) RemoveFriend(ctx context.Context, id int, friend string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.people[id]
	if !ok {
		return apperrors.NewPersonNotFound(id)
	}
	if friend == "" {
		return apperrors.ErrMissingFriend
	}
	if !p.HasFriend(friend) {
		return apperrors.NewFriendNotFound(id, friend)
	}
	other, err := s.byName(friend)
	if err != nil {
		return err
	}
	if !other.HasFriend(p.Name) {
		return apperrors.NewIntegrityViolation(friend)
	}

	p.Friends = without(p.Friends, friend)
	other.Friends = without(other.Friends, p.Name)

	s.logger.Info("Friend removed",
		zap.Int("person_id", id),
		zap.String("person", p.Name),
		zap.String("friend", friend),
	)
	return nil
}

// Seed expands each relationship in both directions, creating people in
// order of first appearance. Pairs that are already friends are skipped.
func (s *MemoryStore) Seed(ctx context.Context, relationships []Relationship) error {
	for _, rel := range relationships {
		if rel.Person == "" || rel.Friend == "" {
			return apperrors.NewInvalidRelationship(rel.Person+knowsSeparator+rel.Friend, "both names are required")
		}
		if rel.Person == rel.Friend {
			return apperrors.NewInvalidRelationship(rel.Person+knowsSeparator+rel.Friend, "a person cannot know themselves")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rel := range relationships {
		a := s.ensure(rel.Person)
		b := s.ensure(rel.Friend)
		if !a.HasFriend(b.Name) {
			a.Friends = append(a.Friends, b.Name)
		}
		if !b.HasFriend(a.Name) {
			b.Friends = append(b.Friends, a.Name)
		}
	}

	s.logger.Debug("Network seeded",
		zap.Int("relationships", len(relationships)),
		zap.Int("people", len(s.order)),
	)
	return nil
}

// ensure returns the person called name, creating it if needed.
// Callers hold the write lock.
func (s *MemoryStore) ensure(name string) *Person {
	if id, ok := s.names[name]; ok {
		if p, ok := s.people[id]; ok {
			return p
		}
	}
	p := &Person{ID: s.nextID, Name: name, Friends: []string{}}
	s.people[p.ID] = p
	s.names[name] = p.ID
	s.order = append(s.order, p.ID)
	s.nextID++
	return p
}

// byName resolves a friend name through the index.
// Callers hold a lock.
func (s *MemoryStore) byName(name string) (*Person, error) {
	id, ok := s.names[name]
	if !ok {
		return nil, apperrors.NewIntegrityViolation(name)
	}
	p, ok := s.people[id]
	if !ok {
		return nil, apperrors.NewIntegrityViolation(name)
	}
	return p, nil
}
