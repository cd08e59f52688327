package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"friend-network/backend/internal/network"
	apperrors "friend-network/backend/pkg/errors"
)

// ============================================================================
// Friendship Operations
// ============================================================================

// AddFriend befriends friend to the person with the given id, creating the
// friend with the next id when the name is new
func (r *Repository) AddFriend(ctx context.Context, id int, friend string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		p, err := personByID(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, apperrors.NewPersonNotFound(id)
		}
		if friend == "" {
			return nil, apperrors.ErrMissingFriend
		}
		if friend == p.Name || p.HasFriend(friend) {
			return nil, apperrors.NewFriendConflict(id, friend)
		}

		other, err := personByName(ctx, tx, friend)
		if err != nil {
			return nil, err
		}
		if other != nil && other.HasFriend(p.Name) {
			return nil, apperrors.NewIntegrityViolation(friend)
		}
		if other == nil {
			if _, err := createPerson(ctx, tx, friend); err != nil {
				return nil, err
			}
		}

		if err := appendFriend(ctx, tx, p.Name, friend); err != nil {
			return nil, err
		}
		return nil, appendFriend(ctx, tx, friend, p.Name)
	})
	if err != nil {
		return r.wrap("add friend", err)
	}

	r.logger.Info("Friend added",
		zap.Int("person_id", id),
		zap.String("friend", friend),
	)
	return nil
}

// RemoveFriend removes the friendship from both people's lists
func (r *Repository) RemoveFriend(ctx context.Context, id int, friend string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		p, err := personByID(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, apperrors.NewPersonNotFound(id)
		}
		if friend == "" {
			return nil, apperrors.ErrMissingFriend
		}
		if !p.HasFriend(friend) {
			return nil, apperrors.NewFriendNotFound(id, friend)
		}

		other, err := personByName(ctx, tx, friend)
		if err != nil {
			return nil, err
		}
		if other == nil || !other.HasFriend(p.Name) {
			return nil, apperrors.NewIntegrityViolation(friend)
		}

		if err := dropFriend(ctx, tx, p.Name, friend); err != nil {
			return nil, err
		}
		return nil, dropFriend(ctx, tx, friend, p.Name)
	})
	if err != nil {
		return r.wrap("remove friend", err)
	}

	r.logger.Info("Friend removed",
		zap.Int("person_id", id),
		zap.String("friend", friend),
	)
	return nil
}

// Seed expands each relationship in both directions inside one transaction.
// Pairs that are already friends are skipped.
func (r *Repository) Seed(ctx context.Context, relationships []network.Relationship) error {
	for _, rel := range relationships {
		if rel.Person == "" || rel.Friend == "" || rel.Person == rel.Friend {
			return apperrors.NewInvalidRelationship(rel.Person+" knows "+rel.Friend, "two distinct names are required")
		}
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, rel := range relationships {
			a, err := ensurePerson(ctx, tx, rel.Person)
			if err != nil {
				return nil, err
			}
			b, err := ensurePerson(ctx, tx, rel.Friend)
			if err != nil {
				return nil, err
			}
			if !a.HasFriend(b.Name) {
				if err := appendFriend(ctx, tx, a.Name, b.Name); err != nil {
					return nil, err
				}
			}
			if !b.HasFriend(a.Name) {
				if err := appendFriend(ctx, tx, b.Name, a.Name); err != nil {
					return nil, err
				}
			}
		}
		return nil, nil
	})
	if err != nil {
		return r.wrap("seed", err)
	}

	r.logger.Info("Graph seeded", zap.Int("relationships", len(relationships)))
	return nil
}

func ensurePerson(ctx context.Context, tx neo4j.ManagedTransaction, name string) (*network.Person, error) {
	p, err := personByName(ctx, tx, name)
	if err != nil || p != nil {
		return p, err
	}
	return createPerson(ctx, tx, name)
}

// createPerson takes the next id from the sequence node and creates an
// unfriended person
func createPerson(ctx context.Context, tx neo4j.ManagedTransaction, name string) (*network.Person, error) {
	query := `
		MERGE (s:Sequence {name: $sequence})
		ON CREATE SET s.value = 0
		SET s.value = s.value + 1
		WITH s.value AS id
		CREATE (p:Person {id: id, name: $name, friends: []})
		RETURN ` + personFields

	result, err := tx.Run(ctx, query, map[string]any{
		"sequence": personSequence,
		"name":     name,
	})
	if err != nil {
		return nil, err
	}
	record, err := result.Single(ctx)
	if err != nil {
		return nil, err
	}
	p := personFromRecord(record)
	return &p, nil
}

func appendFriend(ctx context.Context, tx neo4j.ManagedTransaction, name, friend string) error {
	_, err := tx.Run(ctx, `
		MATCH (p:Person {name: $name})
		SET p.friends = p.friends + $friend
	`, map[string]any{
		"name":   name,
		"friend": friend,
	})
	return err
}

func dropFriend(ctx context.Context, tx neo4j.ManagedTransaction, name, friend string) error {
	_, err := tx.Run(ctx, `
		MATCH (p:Person {name: $name})
		SET p.friends = [f IN p.friends WHERE f <> $friend]
	`, map[string]any{
		"name":   name,
		"friend": friend,
	})
	return err
}
