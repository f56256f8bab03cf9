package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oma0256/store-manager-api/internal/middleware"
	"github.com/oma0256/store-manager-api/internal/service"
)

// UserHandler handles user HTTP requests.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns all store users. Store owner only.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Attendants returned successfully",
		"attendants": users,
	})
}

// Get returns a user together with their sale history.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, sales, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Attendant returned successfully",
		"attendant":    user,
		"sale_records": sales,
	})
}

// ToggleRights flips a user between store owner and attendant. Store owner only.
func (h *UserHandler) ToggleRights(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.userService.ToggleRights(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Admin rights revoked"
	if user.IsAdmin {
		message = "Assigned admin rights"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"user":    user,
	})
}
