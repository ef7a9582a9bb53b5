package api

import (
	"net/http"

	"lfmachado/gym-app/internal/repository"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the small admin surface. Routes using it sit behind
// AdminMiddleware.
type AdminHandler struct {
	userRepo repository.UserRepository
}

func NewAdminHandler(userRepo repository.UserRepository) *AdminHandler {
	return &AdminHandler{userRepo: userRepo}
}

// ListTrainers returns every trainer account, disabled ones included.
func (h *AdminHandler) ListTrainers(c *gin.Context) {
	users, err := h.userRepo.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list trainers.")
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, MapUserToResponse(&users[i]))
	}
	c.JSON(http.StatusOK, resp)
}
