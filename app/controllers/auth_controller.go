package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/resource"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

func userResource(u models.User) resource.Map {
	return resource.Map{
		"id":       u.ID,
		"name":     u.Name,
		"email":    u.Email,
		"role":     u.Role,
		"phone":    u.Phone,
		"address":  u.Address,
		"joinDate": u.JoinDate,
	}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Login handles POST /api/auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	errs, err := bind.JSON(w, r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.service.Login(r.Context(), body.Email, body.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		response.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("login failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	response.Success(w, map[string]interface{}{
		"token": token,
		"user":  resource.New(userResource, user),
	})
}

// Me handles GET /api/me for the bearer of the token.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	user, err := c.service.Profile(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("profile lookup failed", "user_id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	resource.New(userResource, user).Respond(w)
}

// Users handles GET /api/admin/users?page=&per_page=.
func (c *AuthController) Users(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", defaultPerPage)
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	users, p, err := c.service.Users(r.Context(), page, perPage)
	if err != nil {
		logger.WithCtx(r.Context()).Error("list users failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Failed to load users")
		return
	}
	resource.CollectionOf(userResource, users).WithPagination(p).Respond(w)
}

func queryInt(r *http.Request, key string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
