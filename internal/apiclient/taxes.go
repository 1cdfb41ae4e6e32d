package apiclient

import (
	"context"
	"net/http"

	"backoffice/internal/model"
	"backoffice/internal/normalize"
)

// BatchAssignment is the body of PUT /taxes/:taxId/products.
type BatchAssignment struct {
	ProductIDs []string `json:"product_ids"`
	model.AssignmentOptions
}

func (c *Client) ListTaxes(ctx context.Context) ([]model.Tax, error) {
	body, err := c.do(ctx, http.MethodGet, "/taxes", nil)
	if err != nil {
		return nil, err
	}
	taxes := []model.Tax{}
	if err := normalize.UnmarshalList(body, &taxes); err != nil {
		return nil, err
	}
	return taxes, nil
}

func (c *Client) CreateTax(ctx context.Context, tax model.Tax) (model.Tax, error) {
	body, err := c.do(ctx, http.MethodPost, "/taxes", tax)
	if err != nil {
		return model.Tax{}, err
	}
	return decodeTax(body)
}

func (c *Client) UpdateTax(ctx context.Context, id string, tax model.Tax) (model.Tax, error) {
	body, err := c.do(ctx, http.MethodPut, "/taxes/"+escape(id), tax)
	if err != nil {
		return model.Tax{}, err
	}
	return decodeTax(body)
}

func (c *Client) DeleteTax(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/taxes/"+escape(id), nil)
	return err
}

// AssignTax attaches one tax to one product.
func (c *Client) AssignTax(ctx context.Context, productID, taxID string, opts model.AssignmentOptions) error {
	_, err := c.do(ctx, http.MethodPut, "/products/"+escape(productID)+"/taxes/"+escape(taxID), opts)
	return err
}

// BatchAssignTax attaches one tax to many products in a single call and returns the raw response.
func (c *Client) BatchAssignTax(ctx context.Context, taxID string, productIDs []string, opts model.AssignmentOptions) ([]byte, error) {
	return c.do(ctx, http.MethodPut, "/taxes/"+escape(taxID)+"/products", BatchAssignment{
		ProductIDs:        productIDs,
		AssignmentOptions: opts,
	})
}

func decodeTax(body []byte) (model.Tax, error) {
	var tax model.Tax
	if err := normalize.UnmarshalObject(body, &tax); err != nil {
		return model.Tax{}, err
	}
	return tax, nil
}
