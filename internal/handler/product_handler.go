package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"backoffice/internal/model"
	"backoffice/internal/service"

	"github.com/rs/zerolog"
)

const maxUploadBytes = 32 << 20

// ProductHandler handles catalog HTTP requests.
type ProductHandler struct {
	products service.ProductService
	taxes    service.TaxService
	logger   zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products service.ProductService, taxes service.TaxService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		taxes:    taxes,
		logger:   logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id} requests.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product model.Product
	if err := decodeJSON(w, r, &product); err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}

	created, err := h.products.Create(r.Context(), product)
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var product model.Product
	if err := decodeJSON(w, r, &product); err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}

	updated, err := h.products.Update(r.Context(), urlParam(r, "id"), product)
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), urlParam(r, "id")); err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImages handles POST /api/products/{id}/images multipart requests (field "images").
func (h *ProductHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeFailure(w, r, model.NewValidationError("images", "Invalid multipart upload"), h.logger)
		return
	}

	var images []model.Image
	for _, fh := range r.MultipartForm.File["images"] {
		img, err := readImage(fh)
		if err != nil {
			writeFailure(w, r, err, h.logger)
			return
		}
		images = append(images, img)
	}

	body, err := h.products.UploadImages(r.Context(), urlParam(r, "id"), images)
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}
	writeRaw(w, http.StatusOK, body)
}

// AssignTax handles PUT /api/products/{id}/taxes/{taxId} requests.
func (h *ProductHandler) AssignTax(w http.ResponseWriter, r *http.Request) {
	var opts model.AssignmentOptions
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &opts); err != nil {
			writeFailure(w, r, err, h.logger)
			return
		}
	}

	notice, err := h.taxes.Assign(r.Context(), urlParam(r, "id"), urlParam(r, "taxId"), opts)
	if err != nil {
		if notice.Message != "" {
			writeJSON(w, statusFor(err), notice)
			return
		}
		writeFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, notice)
}

func readImage(fh *multipart.FileHeader) (model.Image, error) {
	f, err := fh.Open()
	if err != nil {
		return model.Image{}, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return model.Image{}, fmt.Errorf("failed to read upload %s: %w", fh.Filename, err)
	}
	return model.Image{Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data}, nil
}
