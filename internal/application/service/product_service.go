package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/entity"
	"github.com/nimeshjn/vendura-api/internal/domain/pos"
	"github.com/nimeshjn/vendura-api/internal/domain/repository"
	"github.com/nimeshjn/vendura-api/pkg/apperror"
	"github.com/nimeshjn/vendura-api/pkg/pagination"
	"github.com/nimeshjn/vendura-api/pkg/utils"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	VendorID   uuid.UUID
	CategoryID *uuid.UUID
	Name       string
	SKU        string
	Barcode    *string
	Price      float64
	Stock      int
	StockAlert int
	ImageURL   *string
}

// CreateProduct creates a new catalog product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	sku := input.SKU
	if sku == "" {
		sku = utils.GenerateSKU()
	} else {
		existing, err := s.productRepo.GetBySKU(ctx, input.VendorID, sku)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("SKU already exists")
		}
	}

	stockAlert := input.StockAlert
	if stockAlert <= 0 {
		stockAlert = pos.LowStockThreshold
	}

	product := &entity.Product{
		VendorID:   input.VendorID,
		CategoryID: input.CategoryID,
		Name:       input.Name,
		Slug:       utils.Slugify(input.Name) + "-" + utils.NewUUID().String()[:6],
		SKU:        sku,
		Barcode:    input.Barcode,
		Stock:      input.Stock,
		StockAlert: stockAlert,
		ImageURL:   input.ImageURL,
	}
	product.SetPriceFromDecimal(input.Price)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID, scoped to the vendor
func (s *ProductService) GetProduct(ctx context.Context, vendorID, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.VendorID != vendorID {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByBarcode looks up a product by its barcode for scanner input
func (s *ProductService) GetProductByBarcode(ctx context.Context, vendorID uuid.UUID, barcode string) (*entity.Product, error) {
	product, err := s.productRepo.GetByBarcode(ctx, vendorID, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	CategoryID *uuid.UUID
	Name       *string
	Barcode    *string
	Price      *float64
	Stock      *int
	StockAlert *int
	ImageURL   *string
}

// UpdateProduct updates an existing product
func (s *ProductService) UpdateProduct(ctx context.Context, vendorID, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Barcode != nil {
		product.Barcode = input.Barcode
	}
	if input.Price != nil {
		product.SetPriceFromDecimal(*input.Price)
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.StockAlert != nil {
		product.StockAlert = *input.StockAlert
	}
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a product from the catalog
func (s *ProductService) DeleteProduct(ctx context.Context, vendorID, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, vendorID, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// ProductWithStock pairs a product with its cashier-grid stock display
type ProductWithStock struct {
	entity.Product
	StockDisplay pos.StockDisplay `json:"stock_display"`
}

// ListProducts lists catalog products with their stock classification
func (s *ProductService) ListProducts(ctx context.Context, vendorID uuid.UUID, params *repository.ProductFilterParams) (*pagination.PaginatedResult[ProductWithStock], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	products, total, err := s.productRepo.List(ctx, vendorID, params)
	if err != nil {
		return nil, err
	}

	items := make([]ProductWithStock, 0, len(products))
	for _, p := range products {
		items = append(items, ProductWithStock{
			Product:      p,
			StockDisplay: pos.ClassifyStock(p.Stock),
		})
	}

	return pagination.NewPaginatedResult(items,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// GetLowStockProducts lists products at or below their alert threshold
func (s *ProductService) GetLowStockProducts(ctx context.Context, vendorID uuid.UUID) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx, vendorID)
}

// ImportProductRow represents a single row from the import file
type ImportProductRow struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Barcode      string  `json:"barcode"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
	StockAlert   int     `json:"stock_alert"`
	CategoryName string  `json:"category_name"`
}

// ImportResult contains the result of a product import operation
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportProducts validates and bulk-creates products from parsed import rows.
// Rows that fail validation are reported per-row; valid rows still import.
func (s *ProductService) ImportProducts(ctx context.Context, vendorID uuid.UUID, rows []ImportProductRow) (*ImportResult, error) {
	result := &ImportResult{TotalRows: len(rows)}

	// Load categories once for name-based matching
	categoryMap := make(map[string]*uuid.UUID)
	categories, err := s.categoryRepo.List(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		categoryMap[strings.ToLower(categories[i].Name)] = &categories[i].ID
	}

	// Track SKUs seen in this batch to detect duplicates within the file
	seenSKUs := make(map[string]int) // sku -> row number

	for i, row := range rows {
		rowNum := i + 2 // row 1 is the header, data starts at row 2

		if strings.TrimSpace(row.Name) == "" {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "name", Message: "Name is required"})
			continue
		}
		if row.Price <= 0 {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "price", Message: "Price must be greater than zero"})
			continue
		}
		if row.Stock < 0 {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "stock", Message: "Stock cannot be negative"})
			continue
		}

		sku := strings.TrimSpace(row.SKU)
		if sku == "" {
			sku = utils.GenerateSKU()
		}

		if prevRow, exists := seenSKUs[sku]; exists {
			result.Errors = append(result.Errors, ImportRowError{
				Row:     rowNum,
				Field:   "sku",
				Message: fmt.Sprintf("Duplicate SKU '%s' (same as row %d)", sku, prevRow),
			})
			continue
		}

		existing, err := s.productRepo.GetBySKU(ctx, vendorID, sku)
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "sku", Message: "Error checking SKU: " + err.Error()})
			continue
		}
		if existing != nil {
			result.Errors = append(result.Errors, ImportRowError{
				Row:     rowNum,
				Field:   "sku",
				Message: fmt.Sprintf("SKU '%s' already exists", sku),
			})
			continue
		}

		seenSKUs[sku] = rowNum

		var categoryID *uuid.UUID
		if row.CategoryName != "" {
			if id, ok := categoryMap[strings.ToLower(strings.TrimSpace(row.CategoryName))]; ok {
				categoryID = id
			}
		}

		stockAlert := row.StockAlert
		if stockAlert <= 0 {
			stockAlert = pos.LowStockThreshold
		}

		var barcode *string
		if b := strings.TrimSpace(row.Barcode); b != "" {
			barcode = &b
		}

		product := &entity.Product{
			VendorID:   vendorID,
			CategoryID: categoryID,
			Name:       row.Name,
			Slug:       utils.Slugify(row.Name) + "-" + utils.NewUUID().String()[:6],
			SKU:        sku,
			Barcode:    barcode,
			Stock:      row.Stock,
			StockAlert: stockAlert,
		}
		product.SetPriceFromDecimal(row.Price)

		if err := s.productRepo.Create(ctx, product); err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "", Message: "Failed to create product: " + err.Error()})
			continue
		}
		result.Successful++
	}

	result.Failed = len(result.Errors)
	return result, nil
}

// CreateCategory creates a product category
func (s *ProductService) CreateCategory(ctx context.Context, vendorID uuid.UUID, name string) (*entity.Category, error) {
	slug := utils.Slugify(name)
	existing, err := s.categoryRepo.GetBySlug(ctx, vendorID, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category already exists")
	}

	category := &entity.Category{
		VendorID: vendorID,
		Name:     name,
		Slug:     slug,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists the vendor's categories
func (s *ProductService) ListCategories(ctx context.Context, vendorID uuid.UUID) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx, vendorID)
}

// DeleteCategory removes a category; products keep a dangling reference
// cleared lazily on next update.
func (s *ProductService) DeleteCategory(ctx context.Context, vendorID, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil || category.VendorID != vendorID {
		return apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.Delete(ctx, id)
}
