package classifier

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dermai/dermai/internal/platform/apperr"
	"github.com/dermai/dermai/pkg/respond"
)

// maxImageSize bounds the multipart image accepted for classification.
const maxImageSize = 10 << 20

// Handler exposes the classifier adapter over HTTP.
type Handler struct {
	adapter *Adapter
}

// NewHandler creates a classifier Handler.
func NewHandler(adapter *Adapter) *Handler {
	return &Handler{adapter: adapter}
}

// RegisterRoutes mounts classifier routes on the supplied group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/classify", h.handleClassify)
}

func (h *Handler) handleClassify(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return respond.Error(c, fmt.Errorf("%w: image file is required", apperr.ErrValidation))
	}
	if file.Size > maxImageSize {
		return respond.Error(c, fmt.Errorf("%w: image exceeds %d bytes", apperr.ErrValidation, maxImageSize))
	}

	src, err := file.Open()
	if err != nil {
		return respond.Error(c, fmt.Errorf("%w: opening uploaded image: %v", apperr.ErrStorage, err))
	}
	defer src.Close()

	image, err := io.ReadAll(io.LimitReader(src, maxImageSize+1))
	if err != nil {
		return respond.Error(c, fmt.Errorf("%w: reading uploaded image: %v", apperr.ErrStorage, err))
	}
	if len(image) > maxImageSize {
		return respond.Error(c, fmt.Errorf("%w: image exceeds %d bytes", apperr.ErrValidation, maxImageSize))
	}

	result, err := h.adapter.Classify(c.Request().Context(), image)
	if err != nil {
		return respond.Error(c, err)
	}

	return respond.OK(c, http.StatusOK, result)
}
