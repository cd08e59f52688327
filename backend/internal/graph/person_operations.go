package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"friend-network/backend/internal/network"
	apperrors "friend-network/backend/pkg/errors"
)

// ============================================================================
// Person Operations
// ============================================================================

// List returns every person ordered by id, which is creation order
func (r *Repository) List(ctx context.Context) ([]network.Person, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, "MATCH (p:Person) RETURN "+personFields+" ORDER BY p.id", nil)
	if err != nil {
		return nil, r.wrap("list people", err)
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, r.wrap("list people", err)
	}

	people := make([]network.Person, 0, len(records))
	for _, record := range records {
		people = append(people, personFromRecord(record))
	}
	return people, nil
}

// Get returns the person with the given id
func (r *Repository) Get(ctx context.Context, id int) (network.Person, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		p, err := personByID(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, apperrors.NewPersonNotFound(id)
		}
		return *p, nil
	})
	if err != nil {
		return network.Person{}, r.wrap("get person", err)
	}
	return out.(network.Person), nil
}

// FriendsOfFriends reads the person and their friends in one transaction and
// walks the lists in order, keeping one entry per path.
func (r *Repository) FriendsOfFriends(ctx context.Context, id int) (network.FriendsOfFriends, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		p, err := personByID(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, apperrors.NewPersonNotFound(id)
		}

		friends, err := peopleByName(ctx, tx, p.Friends)
		if err != nil {
			return nil, err
		}

		result := []string{}
		for _, name := range p.Friends {
			mutual, ok := friends[name]
			if !ok {
				return nil, apperrors.NewIntegrityViolation(name)
			}
			for _, friendOf := range mutual.Friends {
				if friendOf != p.Name {
					result = append(result, friendOf)
				}
			}
		}
		return network.FriendsOfFriends{p.Name: result}, nil
	})
	if err != nil {
		return nil, r.wrap("friends of friends", err)
	}
	return out.(network.FriendsOfFriends), nil
}

// personByID returns nil when no person has the id
func personByID(ctx context.Context, tx neo4j.ManagedTransaction, id int) (*network.Person, error) {
	result, err := tx.Run(ctx, "MATCH (p:Person {id: $id}) RETURN "+personFields, map[string]any{
		"id": int64(id),
	})
	if err != nil {
		return nil, err
	}
	return firstPerson(ctx, result)
}

// personByName returns nil when no person has the name
func personByName(ctx context.Context, tx neo4j.ManagedTransaction, name string) (*network.Person, error) {
	result, err := tx.Run(ctx, "MATCH (p:Person {name: $name}) RETURN "+personFields, map[string]any{
		"name": name,
	})
	if err != nil {
		return nil, err
	}
	return firstPerson(ctx, result)
}

// peopleByName fetches every named person in one round trip, keyed by name
func peopleByName(ctx context.Context, tx neo4j.ManagedTransaction, names []string) (map[string]network.Person, error) {
	people := make(map[string]network.Person, len(names))
	if len(names) == 0 {
		return people, nil
	}
	result, err := tx.Run(ctx, "MATCH (p:Person) WHERE p.name IN $names RETURN "+personFields, map[string]any{
		"names": names,
	})
	if err != nil {
		return nil, err
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		p := personFromRecord(record)
		people[p.Name] = p
	}
	return people, nil
}

func firstPerson(ctx context.Context, result neo4j.ResultWithContext) (*network.Person, error) {
	if !result.Next(ctx) {
		return nil, result.Err()
	}
	p := personFromRecord(result.Record())
	return &p, nil
}
