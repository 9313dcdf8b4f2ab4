// Package classifier adapts the external lesion inference endpoint into a
// single best-label result. The model runtime itself lives elsewhere; this
// package only forwards images, picks the top prediction, and maps the raw
// model class names to the display names the rest of the system uses.
package classifier

import (
	"context"
	"fmt"

	"github.com/dermai/dermai/internal/platform/apperr"
)

// Prediction is one class score as returned by the inference endpoint.
type Prediction struct {
	ClassName   string  `json:"className"`
	Probability float64 `json:"probability"`
}

// Result is the adapter's answer for one image.
type Result struct {
	Label      string  `json:"label"`
	RawLabel   string  `json:"rawLabel"`
	Confidence float64 `json:"confidence"`
}

// ModelClient is the transport to the inference endpoint.
type ModelClient interface {
	Predict(ctx context.Context, image []byte) ([]Prediction, error)
}

// labelMapping translates raw model class names to display names. Unmapped
// names pass through unchanged.
var labelMapping = map[string]string{
	"akiec_Actinic_keratoses": "Actinic Keratoses",
	"bkl_Benign_keratosis":    "Benign Keratosis",
	"mel_Melanoma":            "Melanoma",
	"nv_Melanocytic_nevi":     "Melanocytic Nevi",
	"bcc_Basal_cell_carcinoma": "Basal Cell Carcinoma",
}

// DisplayLabel maps a raw model class name to its display name.
func DisplayLabel(raw string) string {
	if mapped, ok := labelMapping[raw]; ok {
		return mapped
	}
	return raw
}

// Adapter turns raw model predictions into a single labeled result.
type Adapter struct {
	client ModelClient
}

// NewAdapter creates an Adapter over the given model client.
func NewAdapter(client ModelClient) *Adapter {
	return &Adapter{client: client}
}

// Classify forwards the image to the model and returns the best prediction.
// Ties keep the earlier entry in upstream order. An unreachable or
// unconfigured model yields apperr.ErrUpstreamUnavailable; the adapter never
// guesses.
func (a *Adapter) Classify(ctx context.Context, image []byte) (*Result, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image is required", apperr.ErrValidation)
	}

	predictions, err := a.client.Predict(ctx, image)
	if err != nil {
		return nil, err
	}
	if len(predictions) == 0 {
		return nil, fmt.Errorf("%w: model returned no predictions", apperr.ErrUpstreamUnavailable)
	}

	best := predictions[0]
	for _, p := range predictions[1:] {
		if p.Probability > best.Probability {
			best = p
		}
	}

	return &Result{
		Label:      DisplayLabel(best.ClassName),
		RawLabel:   best.ClassName,
		Confidence: best.Probability,
	}, nil
}
