package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/internal/service"
	"github.com/utafrali/AngelsParadise/pkg/httputil"
	"github.com/utafrali/AngelsParadise/pkg/validator"
)

// imageField is the multipart field carrying an uploaded product image.
const imageField = "image"

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	service *service.ProductService
	uploads *service.UploadService
	logger  *slog.Logger
	maxBody int64
}

// NewProductHandler creates a new product HTTP handler. maxUpload bounds the
// size of an uploaded image.
func NewProductHandler(svc *service.ProductService, uploads *service.UploadService, maxUpload int64, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		uploads: uploads,
		logger:  logger,
		maxBody: maxUpload,
	}
}

// --- Request DTOs ---

// CreateProductRequest is the JSON body of POST /api/v1/products.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"notblank,max=200"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gte=0"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	InStock     *bool    `json:"inStock"`
	Featured    *bool    `json:"featured"`
}

// UpdateProductRequest is the JSON body of PUT /api/v1/products/{id}. Absent
// fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=200"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	InStock     *bool    `json:"inStock"`
	Featured    *bool    `json:"featured"`
}

// UploadImageResponse is returned by POST /api/v1/products/upload.
type UploadImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

// --- Handlers ---

// CreateProduct handles POST /api/v1/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := validator.DecodeStrict(r.Body, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), &service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		InStock:     req.InStock,
		Featured:    req.Featured,
	})
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, "failed to create product"), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, product)
}

// ListProducts handles GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, "failed to fetch products"), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, products)
}

// GetProduct handles GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, "failed to fetch product"), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, product)
}

// UpdateProduct handles PUT /api/v1/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if err := validator.DecodeStrict(r.Body, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), domain.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		InStock:     req.InStock,
		Featured:    req.Featured,
	})
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, "failed to update product"), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, product)
}

// UploadImage handles POST /api/v1/products/upload with the file in the
// multipart field "image".
func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	// Allow 1MB on top of the file for the other form parts.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody+(1<<20))

	if err := r.ParseMultipartForm(h.maxBody); err != nil {
		var tooLarge *http.MaxBytesError
		msg := "failed to parse multipart form"
		if errors.As(err, &tooLarge) {
			msg = "image is too large"
		}
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: msg},
		})
		return
	}

	file, header, err := r.FormFile(imageField)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "no image file provided"},
		})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.uploads.UploadImage(r.Context(), &service.UploadImageInput{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Data:        file,
	})
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, "failed to upload image"), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, UploadImageResponse{ImageURL: url})
}
