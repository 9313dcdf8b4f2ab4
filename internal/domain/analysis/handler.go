package analysis

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dermai/dermai/internal/platform/apperr"
	"github.com/dermai/dermai/pkg/respond"
)

// Handler exposes analysis endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterPublicRoutes mounts save and read endpoints.
func (h *Handler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/save-analysis", h.handleSave)
	g.GET("/api/analyses/:userId", h.handleListByUser)
	g.GET("/api/analyses/single/:id", h.handleGet)
}

// RegisterDoctorRoutes mounts the delete endpoint on a doctor-guarded group.
func (h *Handler) RegisterDoctorRoutes(g *echo.Group) {
	g.DELETE("/analyses/:id", h.handleDelete)
}

// saveRequest tolerates client-supplied lesionInfo/doctorInfo for
// compatibility with older front ends; both are ignored and re-snapshotted
// server-side.
type saveRequest struct {
	UserID     int         `json:"userId"`
	Image      string      `json:"image"`
	LesionType string      `json:"lesionType"`
	LesionInfo interface{} `json:"lesionInfo"`
	DoctorInfo interface{} `json:"doctorInfo"`
}

func (h *Handler) handleSave(c echo.Context) error {
	var req saveRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	a, err := h.svc.Create(c.Request().Context(), req.UserID, req.Image, req.LesionType)
	if err != nil {
		return respond.Error(c, err)
	}

	return c.JSON(http.StatusOK, respond.Envelope{
		Success: true,
		Message: "Analysis saved successfully",
		Data:    a,
	})
}

func (h *Handler) handleListByUser(c echo.Context) error {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		return respond.Error(c, fmt.Errorf("%w: userId must be numeric", apperr.ErrValidation))
	}

	items, err := h.svc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return respond.Error(c, err)
	}
	if items == nil {
		items = []*Analysis{}
	}
	return respond.OK(c, http.StatusOK, items)
}

func (h *Handler) handleGet(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, fmt.Errorf("%w: invalid analysis id", apperr.ErrValidation))
	}

	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, http.StatusOK, a)
}

func (h *Handler) handleDelete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, fmt.Errorf("%w: invalid analysis id", apperr.ErrValidation))
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respond.Error(c, err)
	}
	return respond.Message(c, http.StatusOK, "Analysis deleted successfully")
}
