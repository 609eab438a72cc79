package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/entity"
)

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
	for _, c := range categories {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		r.categories[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return r.categories[id], nil
}

func (r *fakeCategoryRepo) GetBySlug(ctx context.Context, vendorID uuid.UUID, slug string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.VendorID == vendorID && c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) List(ctx context.Context, vendorID uuid.UUID) ([]entity.Category, error) {
	var out []entity.Category
	for _, c := range r.categories {
		if c.VendorID == vendorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func TestCreateProductDefaults(t *testing.T) {
	vendorID := uuid.New()
	productRepo := newFakeProductRepo()
	svc := NewProductService(productRepo, newFakeCategoryRepo())

	product, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		VendorID: vendorID,
		Name:     "Masala Chai",
		Price:    12.50,
		Stock:    40,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if product.Price != 1250 {
		t.Fatalf("price = %d paise, want 1250", product.Price)
	}
	if product.SKU == "" {
		t.Fatal("expected auto-generated SKU")
	}
	if product.Slug == "" {
		t.Fatal("expected generated slug")
	}
	if product.StockAlert != 5 {
		t.Fatalf("stock alert = %d, want default 5", product.StockAlert)
	}
}

func TestImportProducts(t *testing.T) {
	vendorID := uuid.New()
	productRepo := newFakeProductRepo()
	categoryRepo := newFakeCategoryRepo(&entity.Category{
		VendorID: vendorID,
		Name:     "Beverages",
		Slug:     "beverages",
	})
	svc := NewProductService(productRepo, categoryRepo)

	rows := []ImportProductRow{
		{Name: "Masala Chai", SKU: "CHAI-1", Price: 10, Stock: 50, CategoryName: "beverages"},
		{Name: "", SKU: "NONAME", Price: 5, Stock: 10},
		{Name: "Free Sample", SKU: "FREE", Price: 0, Stock: 10},
		{Name: "Duplicate", SKU: "CHAI-1", Price: 8, Stock: 3},
		{Name: "Samosa", Price: 15, Stock: 20},
	}

	result, err := svc.ImportProducts(context.Background(), vendorID, rows)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if result.TotalRows != 5 {
		t.Fatalf("total rows = %d, want 5", result.TotalRows)
	}
	if result.Successful != 2 {
		t.Fatalf("successful = %d, want 2", result.Successful)
	}
	if result.Failed != 3 {
		t.Fatalf("failed = %d, want 3", result.Failed)
	}

	fields := make(map[string]bool)
	for _, e := range result.Errors {
		fields[e.Field] = true
	}
	for _, want := range []string{"name", "price", "sku"} {
		if !fields[want] {
			t.Fatalf("expected a row error on field %q, got %+v", want, result.Errors)
		}
	}

	var chai *entity.Product
	for _, p := range productRepo.products {
		if p.SKU == "CHAI-1" {
			chai = p
		}
	}
	if chai == nil {
		t.Fatal("imported product not found")
	}
	if chai.CategoryID == nil {
		t.Fatal("category name should have matched")
	}
	if chai.Price != 1000 {
		t.Fatalf("price = %d paise, want 1000", chai.Price)
	}
	if chai.StockAlert != 5 {
		t.Fatalf("stock alert = %d, want default 5", chai.StockAlert)
	}
}
