package graph

import (
	"context"
	"os"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"friend-network/backend/internal/network"
	apperrors "friend-network/backend/pkg/errors"
)

// These tests require a running, disposable Neo4j instance.
// Set NEO4J_URI, NEO4J_USER, NEO4J_PASSWORD environment variables.
func setupRepository(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	driver, err := createTestDriver(ctx)
	if err != nil {
		t.Skipf("Neo4j not available: %v", err)
	}
	t.Cleanup(func() { _ = driver.Close(ctx) })

	repo := NewRepository(driver)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.Reset(ctx))
	t.Cleanup(func() { _ = repo.Reset(ctx) })

	relationships, err := network.ParseRelationships([]string{"Bob knows Alice", "Alice knows Fred", "Fred knows Ganesh"})
	require.NoError(t, err)
	require.NoError(t, repo.Seed(ctx, relationships))
	return ctx, repo
}

func TestRepository_Seed(t *testing.T) {
	ctx, repo := setupRepository(t)

	people, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []network.Person{
		{ID: 1, Name: "Bob", Friends: []string{"Alice"}},
		{ID: 2, Name: "Alice", Friends: []string{"Bob", "Fred"}},
		{ID: 3, Name: "Fred", Friends: []string{"Alice", "Ganesh"}},
		{ID: 4, Name: "Ganesh", Friends: []string{"Fred"}},
	}, people)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestRepository_FriendsOfFriends(t *testing.T) {
	ctx, repo := setupRepository(t)

	result, err := repo.FriendsOfFriends(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, network.FriendsOfFriends{"Fred": {"Bob"}}, result)

	_, err = repo.FriendsOfFriends(ctx, 5)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestRepository_AddAndRemoveFriend(t *testing.T) {
	ctx, repo := setupRepository(t)

	require.NoError(t, repo.AddFriend(ctx, 3, "Josh"))

	fred, err := repo.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Ganesh", "Josh"}, fred.Friends)

	josh, err := repo.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, network.Person{ID: 5, Name: "Josh", Friends: []string{"Fred"}}, josh)

	err = repo.AddFriend(ctx, 3, "Josh")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeConflict))
	err = repo.AddFriend(ctx, 3, "Fred")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeConflict))

	require.NoError(t, repo.RemoveFriend(ctx, 3, "Ganesh"))
	ganesh, err := repo.Get(ctx, 4)
	require.NoError(t, err)
	assert.Empty(t, ganesh.Friends)

	err = repo.RemoveFriend(ctx, 3, "Ganesh")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	err = repo.RemoveFriend(ctx, 9, "Ganesh")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func createTestDriver(ctx context.Context) (neo4j.DriverWithContext, error) {
	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		uri = "bolt://localhost:7687"
	}
	user := os.Getenv("NEO4J_USER")
	if user == "" {
		user = "neo4j"
	}
	password := os.Getenv("NEO4J_PASSWORD")
	if password == "" {
		password = "password"
	}

	return Connect(ctx, uri, user, password)
}
