package documents

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dermai/dermai/internal/platform/apperr"
	"github.com/dermai/dermai/internal/platform/auth"
	"github.com/dermai/dermai/pkg/respond"
)

// Handler exposes document endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterDoctorRoutes mounts upload, listing and deletion on a
// doctor-guarded group.
func (h *Handler) RegisterDoctorRoutes(g *echo.Group) {
	g.POST("/upload", h.handleUpload)
	g.GET("/documents/:userId", h.handleListByUser)
	g.DELETE("/documents/:id", h.handleDelete)
}

// RegisterDownloadRoutes mounts the stable file access route.
func (h *Handler) RegisterDownloadRoutes(g *echo.Group) {
	g.GET("/uploads/:name", h.handleDownload)
}

func (h *Handler) handleUpload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "No file uploaded")
	}

	userID, err := strconv.Atoi(c.FormValue("userId"))
	if err != nil {
		return respond.Error(c, fmt.Errorf("%w: userId must be numeric", apperr.ErrValidation))
	}

	src, err := file.Open()
	if err != nil {
		return respond.Error(c, fmt.Errorf("%w: opening uploaded file: %v", apperr.ErrStorage, err))
	}
	defer src.Close()

	uploadedBy := auth.UserIDFromContext(c.Request().Context())

	d, err := h.svc.Upload(c.Request().Context(), userID, file.Filename, file.Size, src, uploadedBy)
	if err != nil {
		return respond.Error(c, err)
	}

	return c.JSON(http.StatusOK, respond.Envelope{
		Success: true,
		Message: "File uploaded successfully",
		Data:    d,
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
		items = []*Document{}
	}
	return respond.OK(c, http.StatusOK, items)
}

func (h *Handler) handleDelete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, fmt.Errorf("%w: invalid document id", apperr.ErrValidation))
	}

	partial, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, err)
	}
	if partial {
		return respond.Message(c, http.StatusOK, "Document deleted; file cleanup pending")
	}
	return respond.Message(c, http.StatusOK, "Document deleted successfully")
}

func (h *Handler) handleDownload(c echo.Context) error {
	name := c.Param("name")

	rc, err := h.svc.Open(c.Request().Context(), name)
	if err != nil {
		return respond.Error(c, err)
	}
	defer rc.Close()

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename=%q`, name))
	return c.Stream(http.StatusOK, "application/pdf", rc)
}
