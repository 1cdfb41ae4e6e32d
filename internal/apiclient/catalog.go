package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"backoffice/internal/model"
	"backoffice/internal/normalize"
)

func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	body, err := c.do(ctx, http.MethodGet, "/products", nil)
	if err != nil {
		return nil, err
	}
	products := []model.Product{}
	if err := normalize.UnmarshalList(body, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (model.Product, error) {
	body, err := c.do(ctx, http.MethodGet, "/products/"+escape(id), nil)
	if err != nil {
		return model.Product{}, err
	}
	return decodeProduct(body)
}

func (c *Client) CreateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	body, err := c.do(ctx, http.MethodPost, "/products", product)
	if err != nil {
		return model.Product{}, err
	}
	return decodeProduct(body)
}

func (c *Client) UpdateProduct(ctx context.Context, id string, product model.Product) (model.Product, error) {
	body, err := c.do(ctx, http.MethodPut, "/products/"+escape(id), product)
	if err != nil {
		return model.Product{}, err
	}
	return decodeProduct(body)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/products/"+escape(id), nil)
	return err
}

// UploadProductImages posts the files as multipart form data under the "images" field.
func (c *Client) UploadProductImages(ctx context.Context, id string, images []model.Image) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, img := range images {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, img.Filename))
		contentType := img.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, fmt.Errorf("failed to write image %s: %w", img.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	path := "/products/" + escape(id) + "/images"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create image upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(req, path)
}

func decodeProduct(body []byte) (model.Product, error) {
	var product model.Product
	if err := normalize.UnmarshalObject(body, &product); err != nil {
		return model.Product{}, err
	}
	return product, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}
	users := []model.User{}
	if err := normalize.UnmarshalList(body, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (model.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/users/"+escape(id), nil)
	if err != nil {
		return model.User{}, err
	}
	return decodeUser(body)
}

func (c *Client) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	body, err := c.do(ctx, http.MethodPost, "/users", user)
	if err != nil {
		return model.User{}, err
	}
	return decodeUser(body)
}

func (c *Client) UpdateUser(ctx context.Context, id string, user model.User) (model.User, error) {
	body, err := c.do(ctx, http.MethodPut, "/users/"+escape(id), user)
	if err != nil {
		return model.User{}, err
	}
	return decodeUser(body)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/users/"+escape(id), nil)
	return err
}
