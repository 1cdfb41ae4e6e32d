package service

import (
	"context"
	"errors"
	"testing"

	"backoffice/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_List(t *testing.T) {
	api := new(MockProductAPI)
	svc := NewProductService(api, zerolog.Nop())
	ctx := context.Background()

	products := []model.Product{
		{ID: "1", Name: "Café", Price: decimal.RequireFromString("4.5"), Stock: 10},
		{ID: "2", Name: "Té", Price: decimal.RequireFromString("3"), Stock: 0},
	}
	api.On("ListProducts", ctx).Return(products, nil)

	got, err := svc.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, products, got)
}

func TestProductService_List_Error(t *testing.T) {
	api := new(MockProductAPI)
	svc := NewProductService(api, zerolog.Nop())
	ctx := context.Background()

	api.On("ListProducts", ctx).Return(nil, errors.New("connection refused"))

	got, err := svc.List(ctx)

	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestProductService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		product model.Product
		fields  []string
	}{
		{
			name:    "MissingName",
			product: model.Product{Price: decimal.RequireFromString("1")},
			fields:  []string{"name"},
		},
		{
			name:    "NegativePriceAndStock",
			product: model.Product{Name: "x", Price: decimal.RequireFromString("-1"), Stock: -3},
			fields:  []string{"price", "stock"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockProductAPI)
			svc := NewProductService(api, zerolog.Nop())

			_, err := svc.Create(context.Background(), tt.product)

			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			for _, f := range tt.fields {
				assert.Contains(t, verr.Fields, f)
			}
			api.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
		})
	}
}

func TestProductService_Update(t *testing.T) {
	api := new(MockProductAPI)
	svc := NewProductService(api, zerolog.Nop())
	ctx := context.Background()
	product := model.Product{Name: "Café", Price: decimal.RequireFromString("5")}

	updated := product
	updated.ID = "1"
	api.On("UpdateProduct", ctx, "1", product).Return(updated, nil)

	got, err := svc.Update(ctx, "1", product)

	require.NoError(t, err)
	assert.Equal(t, model.ID("1"), got.ID)
}

func TestProductService_UploadImages(t *testing.T) {
	api := new(MockProductAPI)
	svc := NewProductService(api, zerolog.Nop())
	ctx := context.Background()
	images := []model.Image{{Filename: "a.png", ContentType: "image/png", Data: []byte{1}}}

	api.On("UploadProductImages", ctx, "1", images).Return([]byte(`{"images":["/u/a.png"]}`), nil)

	body, err := svc.UploadImages(ctx, "1", images)

	require.NoError(t, err)
	assert.JSONEq(t, `{"images":["/u/a.png"]}`, string(body))
}

func TestProductService_UploadImages_Validation(t *testing.T) {
	svc := NewProductService(new(MockProductAPI), zerolog.Nop())
	ctx := context.Background()

	_, err := svc.UploadImages(ctx, "1", nil)
	var verr *model.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.UploadImages(ctx, "1", []model.Image{{Filename: "a.pdf", ContentType: "application/pdf"}})
	assert.ErrorAs(t, err, &verr)

	_, err = svc.UploadImages(ctx, "", []model.Image{{Filename: "a.png"}})
	assert.ErrorIs(t, err, model.ErrMissingID)
}

func TestProductService_Delete_NotFound(t *testing.T) {
	api := new(MockProductAPI)
	svc := NewProductService(api, zerolog.Nop())
	ctx := context.Background()

	api.On("DeleteProduct", ctx, "9").Return(model.ErrNotFound)

	err := svc.Delete(ctx, "9")

	assert.ErrorIs(t, err, model.ErrNotFound)
}
