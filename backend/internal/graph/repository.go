package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"friend-network/backend/internal/network"
	apperrors "friend-network/backend/pkg/errors"
	"friend-network/backend/pkg/logger"
)

// Repository is a Neo4j-backed network.Store.
//
// Each person is a (:Person {id, name, friends}) node. The friend list is kept
// as an ordered string property so insertion order survives round trips, and
// a (:Sequence {name: "person"}) node hands out ids. Every mutation validates
// and writes both sides inside one write transaction.
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

var _ network.Store = (*Repository)(nil)

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.For("graph"),
	}
}

// Connect creates a driver and verifies the server is reachable
func Connect(ctx context.Context, uri, user, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}
	return driver, nil
}

// Close closes the Neo4j driver connection
func (r *Repository) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

// EnsureSchema creates the uniqueness constraints the repository relies on
func (r *Repository) EnsureSchema(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT person_id IF NOT EXISTS FOR (p:Person) REQUIRE p.id IS UNIQUE",
		"CREATE CONSTRAINT person_name IF NOT EXISTS FOR (p:Person) REQUIRE p.name IS UNIQUE",
		"CREATE CONSTRAINT sequence_name IF NOT EXISTS FOR (s:Sequence) REQUIRE s.name IS UNIQUE",
	}
	for _, query := range constraints {
		if _, err := session.Run(ctx, query, nil); err != nil {
			return apperrors.NewGraphQueryFailed("ensure schema", err)
		}
	}

	r.logger.Info("Graph schema ensured", zap.Int("constraints", len(constraints)))
	return nil
}

// Reset removes every person and the id sequence
func (r *Repository) Reset(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx, "MATCH (p:Person) DETACH DELETE p", nil); err != nil {
			return nil, err
		}
		_, err := tx.Run(ctx, "MATCH (s:Sequence {name: $sequence}) DELETE s", map[string]any{
			"sequence": personSequence,
		})
		return nil, err
	})
	if err != nil {
		return r.wrap("reset", err)
	}

	r.logger.Warn("Graph reset, all people removed")
	return nil
}

// Count returns the number of people stored
func (r *Repository) Count(ctx context.Context) (int, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, "MATCH (p:Person) RETURN count(p) AS people", nil)
	if err != nil {
		return 0, r.wrap("count people", err)
	}
	record, err := result.Single(ctx)
	if err != nil {
		return 0, r.wrap("count people", err)
	}
	return getIntFromRecord(record, "people"), nil
}

// wrap passes domain errors through and marks everything else as a graph failure
func (r *Repository) wrap(operation string, err error) error {
	if apperrors.IsCategorized(err) {
		return err
	}
	return apperrors.NewGraphQueryFailed(operation, err)
}
