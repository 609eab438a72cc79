package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/entity"
	"github.com/nimeshjn/vendura-api/internal/domain/enum"
	"github.com/nimeshjn/vendura-api/internal/domain/repository"
	"github.com/nimeshjn/vendura-api/pkg/apperror"
	"github.com/nimeshjn/vendura-api/pkg/pagination"
)

// --- in-memory fakes ---

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetBySKU(ctx context.Context, vendorID uuid.UUID, sku string) (*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) GetByBarcode(ctx context.Context, vendorID uuid.UUID, barcode string) (*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, vendorID uuid.UUID, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}

func (r *fakeProductRepo) GetLowStock(ctx context.Context, vendorID uuid.UUID) ([]entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	var failed []uuid.UUID
	for id, amount := range decrements {
		p, ok := r.products[id]
		if !ok || p.Stock < amount {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, amount := range decrements {
		r.products[id].Stock -= amount
	}
	return nil, nil
}

func (r *fakeProductRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	for id, amount := range increments {
		if p, ok := r.products[id]; ok {
			p.Stock += amount
		}
	}
	return nil
}

type fakeOrderRepo struct {
	orders    map[uuid.UUID]*entity.Order
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *entity.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) GetByOrderNumber(ctx context.Context, vendorID uuid.UUID, orderNumber string) (*entity.Order, error) {
	for _, o := range r.orders {
		if o.VendorID == vendorID && o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	if o, ok := r.orders[id]; ok {
		o.OrderStatus = status
	}
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context, vendorID uuid.UUID, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	var out []entity.Order
	for _, o := range r.orders {
		if o.VendorID == vendorID {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) GetSalesSummary(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (*repository.SalesSummary, error) {
	return &repository.SalesSummary{}, nil
}

type fakeRegisterRepo struct {
	sessions map[uuid.UUID]*entity.RegisterSession
}

func newFakeRegisterRepo(sessions ...*entity.RegisterSession) *fakeRegisterRepo {
	r := &fakeRegisterRepo{sessions: make(map[uuid.UUID]*entity.RegisterSession)}
	for _, s := range sessions {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		r.sessions[s.ID] = s
	}
	return r
}

func (r *fakeRegisterRepo) Create(ctx context.Context, s *entity.RegisterSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeRegisterRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.RegisterSession, error) {
	return r.sessions[id], nil
}

func (r *fakeRegisterRepo) GetOpenByVendor(ctx context.Context, vendorID uuid.UUID) (*entity.RegisterSession, error) {
	for _, s := range r.sessions {
		if s.VendorID == vendorID && s.Status == enum.SessionStatusOpen {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeRegisterRepo) Update(ctx context.Context, s *entity.RegisterSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeRegisterRepo) List(ctx context.Context, vendorID uuid.UUID, params *pagination.PaginationParams) ([]entity.RegisterSession, int64, error) {
	return nil, 0, nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) GetByPhone(ctx context.Context, vendorID uuid.UUID, phone string) (*entity.Customer, error) {
	return nil, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, c *entity.Customer) error { return nil }

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeCustomerRepo) List(ctx context.Context, vendorID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}

type fakeSettingsRepo struct {
	settings map[uuid.UUID]*entity.VendorSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: make(map[uuid.UUID]*entity.VendorSettings)}
}

func (r *fakeSettingsRepo) GetByVendorID(ctx context.Context, vendorID uuid.UUID) (*entity.VendorSettings, error) {
	return r.settings[vendorID], nil
}

func (r *fakeSettingsRepo) Create(ctx context.Context, s *entity.VendorSettings) error {
	r.settings[s.VendorID] = s
	return nil
}

func (r *fakeSettingsRepo) Update(ctx context.Context, s *entity.VendorSettings) error {
	r.settings[s.VendorID] = s
	return nil
}

// --- tests ---

func checkoutFixture(stock int) (*CheckoutService, *fakeProductRepo, *fakeRegisterRepo, uuid.UUID, *entity.Product) {
	vendorID := uuid.New()
	product := &entity.Product{
		ID:       uuid.New(),
		VendorID: vendorID,
		Name:     "Masala Chai",
		Price:    10000,
		Stock:    stock,
	}
	productRepo := newFakeProductRepo(product)
	registerRepo := newFakeRegisterRepo(&entity.RegisterSession{
		VendorID:     vendorID,
		RegisterName: "Main Register",
		CashierName:  "Asha",
		OpeningFloat: 20000,
		Status:       enum.SessionStatusOpen,
		OpenedAt:     time.Now(),
	})
	svc := NewCheckoutService(newFakeOrderRepo(), productRepo, newFakeCustomerRepo(), registerRepo, newFakeSettingsRepo())
	return svc, productRepo, registerRepo, vendorID, product
}

func TestCheckoutRequiresOpenRegister(t *testing.T) {
	svc, _, _, _, product := checkoutFixture(10)

	// A vendor with no open session cannot complete a sale
	_, err := svc.Checkout(context.Background(), &CheckoutInput{
		VendorID: uuid.New(),
		Items:    []CheckoutItemInput{{ProductID: product.ID, Quantity: 1}},
		Payments: []CheckoutPaymentInput{{Method: enum.PaymentMethodCash, Amount: 100, AmountGiven: 100}},
	})
	if !errors.Is(err, apperror.ErrRegisterNotOpen) {
		t.Fatalf("expected ErrRegisterNotOpen, got %v", err)
	}
}

func TestCheckoutCompletesSaleAndUpdatesSession(t *testing.T) {
	svc, productRepo, registerRepo, vendorID, product := checkoutFixture(10)

	order, err := svc.Checkout(context.Background(), &CheckoutInput{
		VendorID: vendorID,
		Items:    []CheckoutItemInput{{ProductID: product.ID, Quantity: 2}},
		Payments: []CheckoutPaymentInput{{Method: enum.PaymentMethodCash, Amount: 200, AmountGiven: 500}},
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if order.Total != 20000 {
		t.Fatalf("total = %d, want 20000", order.Total)
	}
	if order.Change != 30000 {
		t.Fatalf("change = %d, want 30000", order.Change)
	}
	if order.OrderStatus != enum.OrderStatusComplete {
		t.Fatalf("status = %v, want complete", order.OrderStatus)
	}
	if len(order.Payments) != 1 || order.Payments[0].Method != enum.PaymentMethodCash {
		t.Fatalf("payments = %+v", order.Payments)
	}

	if productRepo.products[product.ID].Stock != 8 {
		t.Fatalf("stock = %d, want 8", productRepo.products[product.ID].Stock)
	}

	session, _ := registerRepo.GetOpenByVendor(context.Background(), vendorID)
	if session.TotalSales != 20000 || session.TotalCashSales != 20000 {
		t.Fatalf("session totals = %d/%d, want 20000/20000", session.TotalSales, session.TotalCashSales)
	}
	if session.TransactionCount != 1 {
		t.Fatalf("transaction count = %d, want 1", session.TransactionCount)
	}
}

func TestCheckoutSplitTenderAttributesMethodBuckets(t *testing.T) {
	svc, _, registerRepo, vendorID, product := checkoutFixture(10)

	order, err := svc.Checkout(context.Background(), &CheckoutInput{
		VendorID: vendorID,
		Items:    []CheckoutItemInput{{ProductID: product.ID, Quantity: 3}},
		Payments: []CheckoutPaymentInput{
			{Method: enum.PaymentMethodCash, Amount: 100, AmountGiven: 100},
			{Method: enum.PaymentMethodUPI, Amount: 200},
		},
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if order.PaymentMethod != enum.PaymentMethodCash {
		t.Fatalf("declared method = %s, want cash (first tender)", order.PaymentMethod)
	}
	if len(order.Payments) != 2 {
		t.Fatalf("payments = %d, want 2", len(order.Payments))
	}

	session, _ := registerRepo.GetOpenByVendor(context.Background(), vendorID)
	if session.TotalCashSales != 10000 || session.TotalDigitalSales != 20000 {
		t.Fatalf("cash/digital = %d/%d, want 10000/20000", session.TotalCashSales, session.TotalDigitalSales)
	}
}

func TestCheckoutFreeSaleCompletesWithoutPayment(t *testing.T) {
	svc, _, registerRepo, vendorID, product := checkoutFixture(10)

	discountType := enum.DiscountTypePercentage
	order, err := svc.Checkout(context.Background(), &CheckoutInput{
		VendorID:      vendorID,
		Items:         []CheckoutItemInput{{ProductID: product.ID, Quantity: 1}},
		DiscountType:  &discountType,
		DiscountValue: 100,
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if order.Total != 0 {
		t.Fatalf("total = %d, want 0", order.Total)
	}
	if order.OrderStatus != enum.OrderStatusComplete {
		t.Fatalf("status = %v, want complete", order.OrderStatus)
	}
	if len(order.Payments) != 0 || order.Change != 0 {
		t.Fatalf("payments = %+v, change = %d", order.Payments, order.Change)
	}

	session, _ := registerRepo.GetOpenByVendor(context.Background(), vendorID)
	if session.TransactionCount != 1 || session.TotalSales != 0 {
		t.Fatalf("session = %d txns / %d sales, want 1/0", session.TransactionCount, session.TotalSales)
	}

	// A sale with a balance still requires at least one payment
	_, err = svc.Checkout(context.Background(), &CheckoutInput{
		VendorID: vendorID,
		Items:    []CheckoutItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err == nil {
		t.Fatal("expected unpaid sale to fail")
	}
}

func TestCheckoutRejectsUnderpayment(t *testing.T) {
	svc, _, _, vendorID, product := checkoutFixture(10)

	_, err := svc.Checkout(context.Background(), &CheckoutInput{
		VendorID: vendorID,
		Items:    []CheckoutItemInput{{ProductID: product.ID, Quantity: 2}},
		Payments: []CheckoutPaymentInput{{Method: enum.PaymentMethodCash, Amount: 150, AmountGiven: 150}},
	})
	if err == nil {
		t.Fatal("expected underpayment to fail")
	}
}

func TestCheckoutAppliesPromoAndTax(t *testing.T) {
	svc, _, _, vendorID, product := checkoutFixture(10)

	promo := "SAVE10"
	order, err := svc.Checkout(context.Background(), &CheckoutInput{
		VendorID:  vendorID,
		Items:     []CheckoutItemInput{{ProductID: product.ID, Quantity: 10}},
		PromoCode: &promo,
		Taxes:     []CheckoutTaxInput{{Name: "GST", Rate: 18}},
		Payments:  []CheckoutPaymentInput{{Method: enum.PaymentMethodUPI, Amount: 1062}},
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	// subtotal 100000, SAVE10 10000, GST 18% of 90000 = 16200
	if order.SubTotal != 100000 || order.Discount != 10000 || order.Tax != 16200 || order.Total != 106200 {
		t.Fatalf("money = %d/%d/%d/%d", order.SubTotal, order.Discount, order.Tax, order.Total)
	}
	if order.PromoCode == nil || *order.PromoCode != "SAVE10" {
		t.Fatalf("promo code not recorded: %v", order.PromoCode)
	}
}

func TestCheckoutInsufficientStock(t *testing.T) {
	svc, productRepo, _, vendorID, product := checkoutFixture(1)

	_, err := svc.Checkout(context.Background(), &CheckoutInput{
		VendorID: vendorID,
		Items:    []CheckoutItemInput{{ProductID: product.ID, Quantity: 3}},
		Payments: []CheckoutPaymentInput{{Method: enum.PaymentMethodCash, Amount: 300, AmountGiven: 300}},
	})
	if err == nil {
		t.Fatal("expected stock error")
	}
	if productRepo.products[product.ID].Stock != 1 {
		t.Fatalf("stock mutated on failed checkout: %d", productRepo.products[product.ID].Stock)
	}
}

func TestCheckoutRestoresStockWhenPersistFails(t *testing.T) {
	vendorID := uuid.New()
	product := &entity.Product{ID: uuid.New(), VendorID: vendorID, Name: "Biscuits", Price: 5000, Stock: 5}
	productRepo := newFakeProductRepo(product)
	orderRepo := newFakeOrderRepo()
	orderRepo.createErr = errors.New("db down")
	registerRepo := newFakeRegisterRepo(&entity.RegisterSession{
		VendorID: vendorID,
		Status:   enum.SessionStatusOpen,
		OpenedAt: time.Now(),
	})
	svc := NewCheckoutService(orderRepo, productRepo, newFakeCustomerRepo(), registerRepo, newFakeSettingsRepo())

	_, err := svc.Checkout(context.Background(), &CheckoutInput{
		VendorID: vendorID,
		Items:    []CheckoutItemInput{{ProductID: product.ID, Quantity: 2}},
		Payments: []CheckoutPaymentInput{{Method: enum.PaymentMethodCash, Amount: 100, AmountGiven: 100}},
	})
	if err == nil {
		t.Fatal("expected persist failure")
	}
	if productRepo.products[product.ID].Stock != 5 {
		t.Fatalf("stock not restored: %d", productRepo.products[product.ID].Stock)
	}
}

func TestQuickAmountsConvertsToRupees(t *testing.T) {
	svc := &CheckoutService{}
	got := svc.QuickAmounts(237)
	want := []float64{237, 240, 250, 300}
	if len(got) != len(want) {
		t.Fatalf("QuickAmounts = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("QuickAmounts = %v, want %v", got, want)
		}
	}
}
