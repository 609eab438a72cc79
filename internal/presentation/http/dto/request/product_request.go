package request

import "github.com/google/uuid"

// CreateProductRequest represents the create product payload.
// Price is in rupees.
type CreateProductRequest struct {
	CategoryID *uuid.UUID `json:"category_id"`
	Name       string     `json:"name" binding:"required"`
	SKU        string     `json:"sku"`
	Barcode    *string    `json:"barcode"`
	Price      float64    `json:"price" binding:"required,gt=0"`
	Stock      int        `json:"stock" binding:"gte=0"`
	StockAlert int        `json:"stock_alert"`
	ImageURL   *string    `json:"image_url"`
}

// UpdateProductRequest represents the update product payload.
// Only supplied fields are changed.
type UpdateProductRequest struct {
	CategoryID *uuid.UUID `json:"category_id"`
	Name       *string    `json:"name"`
	Barcode    *string    `json:"barcode"`
	Price      *float64   `json:"price"`
	Stock      *int       `json:"stock"`
	StockAlert *int       `json:"stock_alert"`
	ImageURL   *string    `json:"image_url"`
}

// CreateCategoryRequest represents the create category payload
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
