package mockapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/ItsmeMIGUEL/sample-crud-app/internal/domain/user"
)

// UserHandler handles HTTP requests for the stub directory
type UserHandler struct {
	store *Store
	log   *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(store *Store, log *zap.Logger) *UserHandler {
	return &UserHandler{
		store: store,
		log:   log,
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users := h.store.List()
	h.log.Info("ListUsers request", zap.Int("count", len(users)))
	c.JSON(http.StatusOK, users)
}

// CreateUser handles POST /users. No validation is performed; the stub
// echoes the upstream service, which accepts any body and assigns an id.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var u domain.User
	if err := c.ShouldBindJSON(&u); err != nil {
		h.log.Warn("Invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_body",
			Message: err.Error(),
		})
		return
	}

	created := h.store.Create(u)
	h.log.Info("CreateUser request", zap.Int64("id", created.ID), zap.String("name", created.Name))
	c.JSON(http.StatusCreated, created)
}

// UpdateUser handles PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	var u domain.User
	if err := c.ShouldBindJSON(&u); err != nil {
		h.log.Warn("Invalid update user request", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_body",
			Message: err.Error(),
		})
		return
	}

	updated, err := h.store.Update(id, u)
	if err != nil {
		h.log.Warn("UpdateUser target missing", zap.Int64("id", id))
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "user not found",
		})
		return
	}

	h.log.Info("UpdateUser request", zap.Int64("id", id), zap.String("name", updated.Name))
	c.JSON(http.StatusOK, updated)
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	h.store.Delete(id)
	h.log.Info("DeleteUser request", zap.Int64("id", id))
	c.JSON(http.StatusOK, gin.H{})
}

// userID parses the :id path parameter, writing a 400 on failure.
func (h *UserHandler) userID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("Invalid user ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "User ID must be a valid number",
		})
		return 0, false
	}
	return id, true
}
