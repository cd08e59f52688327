package network

import "context"

// Store is the interface for the friend network.
// Implementations apply both sides of a friendship change atomically and
// validate before mutating, so a failed call leaves the network untouched.
type Store interface {
	// List returns every person in creation order
	List(ctx context.Context) ([]Person, error)
	// Get returns the person with the given id
	Get(ctx context.Context, id int) (Person, error)
	// FriendsOfFriends returns the names two hops from the person, excluding the person
	FriendsOfFriends(ctx context.Context, id int) (FriendsOfFriends, error)
	// AddFriend befriends friend to the person, creating friend if unknown
	AddFriend(ctx context.Context, id int, friend string) error
	// RemoveFriend removes the friendship between the person and friend
	RemoveFriend(ctx context.Context, id int, friend string) error
	// Seed expands relationships symmetrically into the network
	Seed(ctx context.Context, relationships []Relationship) error
}
