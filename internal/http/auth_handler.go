package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Konaisya/build-service/internal/http/middleware"
	"github.com/Konaisya/build-service/internal/model"
	"github.com/Konaisya/build-service/internal/repository"
	"github.com/Konaisya/build-service/internal/service"
)

type registerRequest struct {
	Name     string  `json:"name" binding:"required"`
	OrgName  *string `json:"org_name"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		OrgName:  req.OrgName,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.RoleUser,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pair, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *Handler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// currentUser resolves the token subject against the users table, so a
// deleted account gets 401 even while its token is still fresh.
func (h *Handler) currentUser(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	user, err := h.auth.UserFromToken(c.Request.Context(), token)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) listUsers(c *gin.Context) {
	filter := repository.Fields{}
	if value := strings.TrimSpace(c.Query("email")); value != "" {
		filter["email"] = value
	}
	if value := c.Query("role"); value != "" {
		filter["role"] = value
	}
	users, err := h.users.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateUserRequest struct {
	Name        *string `json:"name"`
	OrgName     *string `json:"org_name"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	OldPassword *string `json:"old_password"`
	Role        *string `json:"role"`
}

// updateUser lets a user edit their own account; role changes stay
// admin-only.
func (h *Handler) updateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	claims, ok := middleware.MustClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	isAdmin := claims.Role == string(model.RoleAdmin)
	if !isAdmin && userID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input := service.UpdateUserInput{
		Name:        req.Name,
		OrgName:     req.OrgName,
		Email:       req.Email,
		Password:    req.Password,
		OldPassword: req.OldPassword,
	}
	if req.Role != nil {
		if !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		role := model.Role(*req.Role)
		input.Role = &role
	}

	user, err := h.users.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
