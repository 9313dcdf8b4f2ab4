package account

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dermai/dermai/internal/platform/apperr"
	"github.com/dermai/dermai/internal/platform/auth"
	"github.com/dermai/dermai/pkg/respond"
)

// Handler exposes account endpoints.
type Handler struct {
	svc    *Service
	tokens *auth.TokenIssuer
}

func NewHandler(svc *Service, tokens *auth.TokenIssuer) *Handler {
	return &Handler{svc: svc, tokens: tokens}
}

// RegisterPublicRoutes mounts signup, login and profile setup.
func (h *Handler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/signup", h.handleSignup)
	g.POST("/login", h.handleLogin)
	g.POST("/profile-setup", h.handleProfileSetup)
}

// RegisterDoctorRoutes mounts the patient directory search. The group is
// expected to carry the doctor role guard.
func (h *Handler) RegisterDoctorRoutes(g *echo.Group) {
	g.GET("/search", h.handleSearch)
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleSignup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	u, err := h.svc.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return respond.Error(c, err)
	}

	return c.JSON(http.StatusCreated, respond.Envelope{
		Success: true,
		Message: "User registered successfully",
		Data: map[string]interface{}{
			"userId": u.UserID,
			"name":   u.Name,
			"email":  u.Email,
		},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	u, err := h.svc.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respond.Error(c, err)
	}

	token, err := h.tokens.Issue(u.UserID, u.Name, u.Email, u.Role)
	if err != nil {
		return respond.Error(c, fmt.Errorf("issuing session token: %w", err))
	}

	return c.JSON(http.StatusOK, respond.Envelope{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"userId":  u.UserID,
			"name":    u.Name,
			"email":   u.Email,
			"role":    u.Role,
			"profile": u.Profile,
			"token":   token,
		},
	})
}

type profileSetupRequest struct {
	Email    string `json:"email"`
	Location string `json:"location"`
	Age      int    `json:"age"`
}

func (h *Handler) handleProfileSetup(c echo.Context) error {
	var req profileSetupRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.CompleteProfile(c.Request().Context(), req.Email, req.Location, req.Age); err != nil {
		return respond.Error(c, err)
	}
	return respond.Message(c, http.StatusOK, "Profile setup completed successfully")
}

func (h *Handler) handleSearch(c echo.Context) error {
	q := SearchQuery{
		Name:  c.QueryParam("name"),
		Email: c.QueryParam("email"),
	}
	if raw := c.QueryParam("userId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return respond.Error(c, fmt.Errorf("%w: userId must be numeric", apperr.ErrValidation))
		}
		q.UserID = id
	}

	users, err := h.svc.SearchPatients(c.Request().Context(), q)
	if err != nil {
		return respond.Error(c, err)
	}
	if users == nil {
		users = []*User{}
	}
	return respond.OK(c, http.StatusOK, users)
}
