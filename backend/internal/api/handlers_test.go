package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"friend-network/backend/internal/network"
	apperrors "friend-network/backend/pkg/errors"
)

const (
	existingItemURL = BasePath + "/3" // Fred
	missingItemURL  = BasePath + "/5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter seeds Bob knows Alice, Alice knows Fred, Fred knows Ganesh
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	svc := network.NewService(network.NewMemoryStore(nopLogger()), nopLogger())
	require.NoError(t, svc.Seed(context.Background(), []string{"Bob knows Alice", "Alice knows Fred", "Fred knows Ganesh"}))
	return NewRouter(svc, nopLogger(), Options{MetricsEnabled: true})
}

func do(router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	return serve(router, req)
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}

func getNetwork(t *testing.T, router *gin.Engine) []network.Person {
	t.Helper()
	w := do(router, http.MethodGet, BasePath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp NetworkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Network
}

func decodeStatus(t *testing.T, w *httptest.ResponseRecorder) StatusResponse {
	t.Helper()
	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// =============================================================================
// GET /api/v1/resources/network
// =============================================================================

func TestListNetwork(t *testing.T) {
	router := newTestRouter(t)

	people := getNetwork(t, router)

	require.Len(t, people, 4)
	assert.Equal(t, network.Person{ID: 2, Name: "Alice", Friends: []string{"Bob", "Fred"}}, people[1])
}

func TestListNetwork_JSONShape(t *testing.T) {
	router := newTestRouter(t)
	_ = do(router, http.MethodDelete, existingItemURL, gin.H{"friend": "Ganesh"})

	w := do(router, http.MethodGet, BasePath, nil)

	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, w.Body.String(), `{"id":1,"name":"Bob","friends":["Alice"]}`)
	assert.Contains(t, w.Body.String(), `{"id":4,"name":"Ganesh","friends":[]}`)
}

// =============================================================================
// GET /api/v1/resources/network/:id
// =============================================================================

func TestFriendsOfFriends(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodGet, existingItemURL, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"Fred": ["Bob"]}`, w.Body.String())
}

func TestFriendsOfFriends_EmptyList(t *testing.T) {
	router := newTestRouter(t)
	require.Equal(t, http.StatusOK, do(router, http.MethodPut, existingItemURL, gin.H{"friend": "Josh"}).Code)
	require.Equal(t, http.StatusOK, do(router, http.MethodDelete, existingItemURL, gin.H{"friend": "Josh"}).Code)

	w := do(router, http.MethodGet, BasePath+"/5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"Josh": []}`, w.Body.String())
}

func TestItemNotExist(t *testing.T) {
	router := newTestRouter(t)

	for _, url := range []string{missingItemURL, BasePath + "/0", BasePath + "/-1", BasePath + "/fred"} {
		t.Run(url, func(t *testing.T) {
			w := do(router, http.MethodGet, url, nil)

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, StatusResponse{Status: 404, Message: apperrors.MsgPersonNotFound}, decodeStatus(t, w))
		})
	}
}

// =============================================================================
// PUT /api/v1/resources/network/:id
// =============================================================================

func TestAddFriend(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodPut, existingItemURL, gin.H{"friend": "Josh"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, StatusResponse{Status: 200, Message: MsgFriendAdded}, decodeStatus(t, w))

	people := getNetwork(t, router)
	require.Len(t, people, 5)
	assert.Equal(t, []string{"Alice", "Ganesh", "Josh"}, people[2].Friends)
	assert.Equal(t, []string{"Fred"}, people[4].Friends)
	assert.Equal(t, 5, people[4].ID)
}

func TestAddFriend_Errors(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		body    any
		status  int
		message string
	}{
		{"missing person", missingItemURL, gin.H{"friend": "Josh"}, http.StatusNotFound, apperrors.MsgPersonNotFound},
		{"missing person with bad body", missingItemURL, gin.H{"person": "Josh"}, http.StatusNotFound, apperrors.MsgPersonNotFound},
		{"invalid friend field", existingItemURL, gin.H{"person": "Josh"}, http.StatusBadRequest, apperrors.MsgMissingFriend},
		{"empty friend", existingItemURL, gin.H{"friend": ""}, http.StatusBadRequest, apperrors.MsgMissingFriend},
		{"non-string friend", existingItemURL, gin.H{"friend": 7}, http.StatusBadRequest, apperrors.MsgMissingFriend},
		{"malformed json", existingItemURL, "{not json", http.StatusBadRequest, apperrors.MsgMissingFriend},
		{"no body", existingItemURL, nil, http.StatusBadRequest, apperrors.MsgMissingFriend},
		{"same person", existingItemURL, gin.H{"friend": "Fred"}, http.StatusConflict, apperrors.MsgFriendExists},
		{"existing friend", existingItemURL, gin.H{"friend": "Ganesh"}, http.StatusConflict, apperrors.MsgFriendExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t)
			before := getNetwork(t, router)

			w := do(router, http.MethodPut, tt.url, tt.body)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, StatusResponse{Status: tt.status, Message: tt.message}, decodeStatus(t, w))
			assert.Equal(t, before, getNetwork(t, router))
		})
	}
}

// =============================================================================
// DELETE /api/v1/resources/network/:id
// =============================================================================

func TestRemoveFriend(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodDelete, existingItemURL, gin.H{"friend": "Ganesh"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, StatusResponse{Status: 200, Message: MsgFriendRemoved}, decodeStatus(t, w))

	people := getNetwork(t, router)
	require.Len(t, people, 4)
	assert.Equal(t, []string{"Alice"}, people[2].Friends)
	assert.Equal(t, []string{}, people[3].Friends)
}

func TestRemoveFriend_Errors(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		body    any
		status  int
		message string
	}{
		{"friend does not exist", existingItemURL, gin.H{"friend": "Josh"}, http.StatusNotFound, apperrors.MsgFriendNotFound},
		{"missing person", missingItemURL, gin.H{"friend": "Josh"}, http.StatusNotFound, apperrors.MsgPersonNotFound},
		{"invalid friend field", existingItemURL, gin.H{"person": "Josh"}, http.StatusBadRequest, apperrors.MsgMissingFriend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t)
			before := getNetwork(t, router)

			w := do(router, http.MethodDelete, tt.url, tt.body)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, StatusResponse{Status: tt.status, Message: tt.message}, decodeStatus(t, w))
			assert.Equal(t, before, getNetwork(t, router))
		})
	}
}

func TestAddThenRemove_RoundTrip(t *testing.T) {
	router := newTestRouter(t)
	before := getNetwork(t, router)

	require.Equal(t, http.StatusOK, do(router, http.MethodPut, BasePath+"/1", gin.H{"friend": "Ganesh"}).Code)
	require.Equal(t, http.StatusOK, do(router, http.MethodDelete, BasePath+"/1", gin.H{"friend": "Ganesh"}).Code)

	assert.Equal(t, before, getNetwork(t, router))
}

// =============================================================================
// Internal errors
// =============================================================================

type brokenStore struct {
	network.Store
}

func (brokenStore) List(ctx context.Context) ([]network.Person, error) {
	return nil, apperrors.NewGraphQueryFailed("list people", context.DeadlineExceeded)
}

func TestListNetwork_BackendFailure(t *testing.T) {
	svc := network.NewService(brokenStore{}, nopLogger())
	router := NewRouter(svc, nopLogger(), Options{})

	w := do(router, http.MethodGet, BasePath, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, StatusResponse{Status: 500, Message: apperrors.MsgInternal}, decodeStatus(t, w))
}
