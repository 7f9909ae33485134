package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kilo-recipes/recipe-api/backend/internal/middleware"
	"github.com/kilo-recipes/recipe-api/backend/internal/service"
	"github.com/kilo-recipes/recipe-api/backend/internal/types"
)

// UserHandler serves registration, token issuance and the self profile
type UserHandler struct {
	authService service.IAuthService
	logger      *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService service.IAuthService, logger *zap.Logger) *UserHandler {
	return &UserHandler{authService: authService, logger: logger}
}

// RegisterRoutes mounts /user/ under router; auth guards /user/me/.
func (h *UserHandler) RegisterRoutes(router gin.IRouter, auth gin.HandlerFunc) {
	user := router.Group("/user")
	{
		user.POST("/", h.CreateUser)
		user.POST("/token/", h.CreateToken)

		me := user.Group("/me", auth)
		me.GET("/", h.GetMe)
		me.PUT("/", h.UpdateMe)
		me.PATCH("/", h.PatchMe)
	}
}

// CreateUser registers an account
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req types.CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindErrors(err).Fields)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, types.NewUserResponse(user))
}

// CreateToken exchanges credentials for a token
func (h *UserHandler) CreateToken(c *gin.Context) {
	var req types.TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindErrors(err).Fields)
		return
	}

	verr := &service.ValidationError{}
	if strings.TrimSpace(req.Email) == "" {
		verr.Add("email", "This field may not be blank.")
	}
	if req.Password == "" {
		verr.Add("password", "This field may not be blank.")
	}
	if err := verr.Err(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	token, _, err := h.authService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, types.TokenResponse{Token: token})
}

// GetMe returns the authenticated account
func (h *UserHandler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, types.NewUserResponse(middleware.CurrentUser(c)))
}

// UpdateMe replaces the profile; email and password are required.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	h.updateMe(c, false)
}

// PatchMe changes only the fields present in the payload
func (h *UserHandler) PatchMe(c *gin.Context) {
	h.updateMe(c, true)
}

func (h *UserHandler) updateMe(c *gin.Context, partial bool) {
	var req types.UpdateUserRequest
	if err := bindOptional(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, bindErrors(err).Fields)
		return
	}

	if !partial {
		verr := &service.ValidationError{}
		if req.Email == nil {
			verr.Add("email", "This field is required.")
		}
		if req.Password == nil {
			verr.Add("password", "This field is required.")
		}
		if err := verr.Err(); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	user, err := h.authService.UpdateUser(c.Request.Context(), middleware.CurrentUserID(c), service.UpdateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, types.NewUserResponse(user))
}
