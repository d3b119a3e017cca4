package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/internal/service"
	"github.com/utafrali/AngelsParadise/pkg/httputil"
	"github.com/utafrali/AngelsParadise/pkg/validator"
)

// BusinessInfoHandler serves the storefront's contact and homepage document.
type BusinessInfoHandler struct {
	service *service.BusinessInfoService
	logger  *slog.Logger
}

// NewBusinessInfoHandler creates a new business info HTTP handler.
func NewBusinessInfoHandler(svc *service.BusinessInfoService, logger *slog.Logger) *BusinessInfoHandler {
	return &BusinessInfoHandler{
		service: svc,
		logger:  logger,
	}
}

// BusinessInfoRequest is the JSON body of POST /api/v1/business-info. Only
// the fields present are written.
type BusinessInfoRequest struct {
	Name         *string `json:"name"`
	Tagline      *string `json:"tagline"`
	About        *string `json:"about"`
	ContactEmail *string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone *string `json:"contactPhone"`
	Address      *string `json:"address"`
	WhatsApp     *string `json:"whatsapp"`
	Facebook     *string `json:"facebook"`
	Instagram    *string `json:"instagram"`
	Twitter      *string `json:"twitter"`
	HeroTitle    *string `json:"heroTitle"`
	HeroSubtitle *string `json:"heroSubtitle"`
}

// Get handles GET /api/v1/business-info. data is null until the document is
// first saved.
func (h *BusinessInfoHandler) Get(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Get(r.Context())
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, "failed to fetch business info"), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{"data": info})
}

// Upsert handles POST /api/v1/business-info
func (h *BusinessInfoHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req BusinessInfoRequest
	if err := validator.DecodeStrict(r.Body, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	info, err := h.service.Upsert(r.Context(), domain.BusinessInfoPatch{
		Name:         req.Name,
		Tagline:      req.Tagline,
		About:        req.About,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		WhatsApp:     req.WhatsApp,
		Facebook:     req.Facebook,
		Instagram:    req.Instagram,
		Twitter:      req.Twitter,
		HeroTitle:    req.HeroTitle,
		HeroSubtitle: req.HeroSubtitle,
	})
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, "failed to save business info"), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, info)
}
