package track

import (
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-track/internal/common"
)

// Handler serves the tracking endpoints.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
	Log      zerolog.Logger
}

type trackParams struct {
	Carrier string `validate:"required"`
	Code    string `validate:"required"`
}

type trackResponse struct {
	Ok bool `json:"ok"`
	Result
}

// Track handles GET /api/v1/track?carrier=...&code=...
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	params := trackParams{
		Carrier: r.URL.Query().Get("carrier"),
		Code:    r.URL.Query().Get("code"),
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(params); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "carrier and code are required", nil)
			return
		}
	}

	result, err := h.Svc.Track(r.Context(), params.Carrier, params.Code)
	switch {
	case errors.Is(err, ErrMissingParams):
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
	case errors.Is(err, ErrCarrierNotSupported):
		common.JSON(w, http.StatusNotFound, map[string]any{
			"ok":      false,
			"error":   err.Error(),
			"carrier": result.Carrier,
		})
	case err != nil:
		// Never leak carrier-page internals to the caller.
		h.Log.Error().Err(err).Str("carrier", params.Carrier).Msg("tracking lookup failed")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	default:
		common.JSON(w, http.StatusOK, trackResponse{Ok: true, Result: result})
	}
}

// Carriers handles GET /api/v1/carriers and lists the supported carrier ids.
func (h *Handler) Carriers(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"data": h.Svc.Registry.IDs(),
	})
}
