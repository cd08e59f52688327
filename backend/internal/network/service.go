package network

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	apperrors "friend-network/backend/pkg/errors"
)

// Service provides the friend network operations used by the HTTP layer.
// It adds logging and metrics on top of a Store.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a service over store
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Network returns every person in creation order
func (s *Service) Network(ctx context.Context) ([]Person, error) {
	people, err := s.store.List(ctx)
	recordOperation("list", err)
	if err != nil {
		s.logFailure("list", err)
		return nil, err
	}
	peopleTotal.Set(float64(len(people)))
	return people, nil
}

// Person returns a single person
func (s *Service) Person(ctx context.Context, id int) (Person, error) {
	p, err := s.store.Get(ctx, id)
	recordOperation("get", err)
	if err != nil {
		s.logFailure("get", err, zap.Int("person_id", id))
	}
	return p, err
}

// FriendsOfFriends returns the names two hops away from the person
func (s *Service) FriendsOfFriends(ctx context.Context, id int) (FriendsOfFriends, error) {
	result, err := s.store.FriendsOfFriends(ctx, id)
	recordOperation("friends_of_friends", err)
	if err != nil {
		s.logFailure("friends_of_friends", err, zap.Int("person_id", id))
	}
	return result, err
}

// AddFriend befriends friend to the person
func (s *Service) AddFriend(ctx context.Context, id int, friend string) error {
	err := s.store.AddFriend(ctx, id, friend)
	recordOperation("add_friend", err)
	if err != nil {
		s.logFailure("add_friend", err, zap.Int("person_id", id), zap.String("friend", friend))
	}
	return err
}

// RemoveFriend removes the friendship between the person and friend
func (s *Service) RemoveFriend(ctx context.Context, id int, friend string) error {
	err := s.store.RemoveFriend(ctx, id, friend)
	recordOperation("remove_friend", err)
	if err != nil {
		s.logFailure("remove_friend", err, zap.Int("person_id", id), zap.String("friend", friend))
	}
	return err
}

// Seed parses "A knows B" entries and loads them into the store
func (s *Service) Seed(ctx context.Context, entries []string) error {
	relationships, err := ParseRelationships(entries)
	if err == nil {
		err = s.store.Seed(ctx, relationships)
	}
	recordOperation("seed", err)
	if err != nil {
		return fmt.Errorf("failed to seed network: %w", err)
	}
	s.logger.Info("Network seeded", zap.Int("relationships", len(relationships)))
	return nil
}

// logFailure logs internal failures at Error and client mistakes at Debug
func (s *Service) logFailure(operation string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("operation", operation), zap.Error(err))
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeInternal, apperrors.ErrorTypeGraph:
		s.logger.Error("Network operation failed", fields...)
	default:
		s.logger.Debug("Network operation rejected", fields...)
	}
}
