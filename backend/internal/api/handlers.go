package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"friend-network/backend/internal/network"
	apperrors "friend-network/backend/pkg/errors"
)

// Response messages
const (
	MsgFriendAdded   = "Requested friend added to person"
	MsgFriendRemoved = "Requested friend removed from person"
)

const indexPage = "<h1>Friend network API</h1><p>This site is a prototype API for adding friends, removing friends and listing friends of friends. Refer to README.md for documentation.</p>"

// StatusResponse is the body of every mutation response and every error
type StatusResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// NetworkResponse is the body of the list endpoint
type NetworkResponse struct {
	Network []network.Person `json:"network"`
}

// friendRequest is the PUT/DELETE body
type friendRequest struct {
	Friend string `json:"friend"`
}

// Handler serves the friend network endpoints
type Handler struct {
	svc *network.Service
	log *zap.Logger
}

// NewHandler creates the HTTP handlers over svc
func NewHandler(svc *network.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Index serves the HTML landing page
func (h *Handler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPage))
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListNetwork returns every person with their friends
func (h *Handler) ListNetwork(c *gin.Context) {
	people, err := h.svc.Network(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NetworkResponse{Network: people})
}

// FriendsOfFriends returns {name: [friends of friends]} for one person
func (h *Handler) FriendsOfFriends(c *gin.Context) {
	id, ok := h.personID(c)
	if !ok {
		return
	}
	result, err := h.svc.FriendsOfFriends(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AddFriend befriends the body's friend to the person
func (h *Handler) AddFriend(c *gin.Context) {
	id, ok := h.personID(c)
	if !ok {
		return
	}
	if err := h.svc.AddFriend(c.Request.Context(), id, h.friend(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StatusResponse{Status: http.StatusOK, Message: MsgFriendAdded})
}

// RemoveFriend removes the body's friend from the person
func (h *Handler) RemoveFriend(c *gin.Context) {
	id, ok := h.personID(c)
	if !ok {
		return
	}
	if err := h.svc.RemoveFriend(c.Request.Context(), id, h.friend(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StatusResponse{Status: http.StatusOK, Message: MsgFriendRemoved})
}

// personID parses the :id path segment. Anything but an integer is an
// unknown person.
func (h *Handler) personID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.respondError(c, apperrors.NewPersonNotFound(0))
		return 0, false
	}
	return id, true
}

// friend extracts the friend name from the body. A missing field, an empty
// name or an undecodable body all yield "", which the store reports as a
// missing friend once it has confirmed the person exists.
func (h *Handler) friend(c *gin.Context) string {
	var req friendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug("Friend body rejected",
			zap.String("request_id", c.GetString(RequestIDHeader)),
			zap.Error(err),
		)
		return ""
	}
	return req.Friend
}

// respondError writes the {status, message} body for err
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("Request failed",
			zap.String("request_id", c.GetString(RequestIDHeader)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, StatusResponse{Status: status, Message: apperrors.MessageOf(err)})
}

func statusFor(err error) int {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeInvalidRequest:
		return http.StatusBadRequest
	case apperrors.ErrorTypeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
