package model

import "github.com/shopspring/decimal"

// Product represents a catalog product.
type Product struct {
	ID          ID              `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Images      []string        `json:"images"`
	Active      bool            `json:"active"`
	Taxes       []ProductTax    `json:"taxes,omitempty"`
}

// User is a customer or staff record.
type User struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	ProfilePic string `json:"profilePic,omitempty"`
	Password   string `json:"password,omitempty"`
}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Image is one file of a product image upload.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}
