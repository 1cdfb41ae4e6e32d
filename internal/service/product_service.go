package service

import (
	"context"
	"fmt"
	"strings"

	"backoffice/internal/model"

	"github.com/rs/zerolog"
)

const maxImagesPerUpload = 10

// productService implements ProductService.
type productService struct {
	api    ProductAPI
	logger zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(api ProductAPI, logger zerolog.Logger) ProductService {
	return &productService{
		api:    api,
		logger: logger.With().Str("service", "product").Logger(),
	}
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")
	return products, nil
}

func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	if strings.TrimSpace(id) == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrMissingID
	}

	product, err := s.api.GetProduct(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (s *productService) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	created, err := s.api.CreateProduct(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", created.ID.String()).Msg("product created")
	return &created, nil
}

func (s *productService) Update(ctx context.Context, id string, product model.Product) (*model.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, model.ErrMissingID
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	updated, err := s.api.UpdateProduct(ctx, id, product)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &updated, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return model.ErrMissingID
	}

	if err := s.api.DeleteProduct(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *productService) UploadImages(ctx context.Context, id string, images []model.Image) ([]byte, error) {
	if strings.TrimSpace(id) == "" {
		return nil, model.ErrMissingID
	}
	if len(images) == 0 {
		return nil, model.NewValidationError("images", "At least one image is required")
	}
	if len(images) > maxImagesPerUpload {
		return nil, model.NewValidationError("images", fmt.Sprintf("At most %d images per upload", maxImagesPerUpload))
	}
	for _, img := range images {
		if ct := img.ContentType; ct != "" && !strings.HasPrefix(ct, "image/") {
			return nil, model.NewValidationError("images", fmt.Sprintf("%s is not an image", img.Filename))
		}
	}

	body, err := s.api.UploadProductImages(ctx, id, images)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Int("count", len(images)).Msg("failed to upload images")
		return nil, fmt.Errorf("failed to upload product images: %w", err)
	}

	s.logger.Info().Str("product_id", id).Int("count", len(images)).Msg("product images uploaded")
	return body, nil
}

func validateProduct(p model.Product) error {
	v := &model.ValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		v.Add("name", "Name is required")
	}
	if p.Price.IsNegative() {
		v.Add("price", "Price must be a non-negative number")
	}
	if p.Stock < 0 {
		v.Add("stock", "Stock must be a non-negative number")
	}
	return v.OrNil()
}
