package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/entity"
	"github.com/nimeshjn/vendura-api/internal/domain/pos"
	"github.com/nimeshjn/vendura-api/internal/domain/repository"
	"github.com/nimeshjn/vendura-api/pkg/apperror"
	"github.com/nimeshjn/vendura-api/pkg/printer"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer      printer.Printer
	orderRepo    repository.OrderRepository
	settingsRepo repository.SettingsRepository
	printerType  string
	paperWidth   int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	orderRepo repository.OrderRepository,
	settingsRepo repository.SettingsRepository,
	printerType string,
	paperWidth int,
) *PrinterService {
	if paperWidth <= 0 {
		paperWidth = 32
	}
	return &PrinterService{
		printer:      p,
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		printerType:  printerType,
		paperWidth:   paperWidth,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when no
// printer is configured.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: "PRINTER TEST",
			Address:   "Test Address",
			Phone:     "+91 00000 00000",
		},
		OrderNumber: "TEST-001",
		Date:        time.Now().Format("2006-01-02 15:04"),
		Cashier:     "System",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 10.00, Total: 10.00},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 5.00, Total: 10.00},
		},
		SubTotal: 20.00,
		Total:    20.00,
		Payments: []entity.ReceiptPayment{
			{Method: "cash", Amount: 20.00, AmountGiven: 20.00},
		},
	}

	data := s.FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// BuildOrderReceipt composes the printable receipt for an order, pulling the
// store header and footer from the vendor's settings.
func (s *PrinterService) BuildOrderReceipt(ctx context.Context, vendorID, orderID uuid.UUID) (*entity.Receipt, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.VendorID != vendorID {
		return nil, apperror.NewNotFoundError("Order")
	}

	receipt := &entity.Receipt{
		OrderNumber: order.OrderNumber,
		Date:        order.CreatedAt.Format("2006-01-02 15:04"),
		SubTotal:    float64(order.SubTotal) / 100,
		Discount:    float64(order.Discount) / 100,
		Tax:         float64(order.Tax) / 100,
		Total:       float64(order.Total) / 100,
		Change:      float64(order.Change) / 100,
	}

	settings, err := s.settingsRepo.GetByVendorID(ctx, vendorID)
	if err == nil && settings != nil {
		receipt.Header = entity.ReceiptHeader{
			StoreName: settings.StoreName,
			Address:   settings.Address,
			Phone:     settings.Phone,
			TaxID:     settings.TaxID,
		}
		receipt.Footer = settings.ReceiptFooter
	}

	if order.Customer != nil {
		receipt.Customer = order.Customer.Name
	} else if order.CustomerName != nil {
		receipt.Customer = *order.CustomerName
	}

	for _, d := range order.Details {
		item := entity.ReceiptItem{
			Quantity:  d.Quantity,
			UnitPrice: float64(d.UnitPrice) / 100,
			Total:     float64(d.Total) / 100,
		}
		if d.Product.Name != "" {
			item.Name = d.Product.Name
		} else {
			item.Name = "Product"
		}
		receipt.Items = append(receipt.Items, item)
	}

	for _, p := range order.Payments {
		receipt.Payments = append(receipt.Payments, entity.ReceiptPayment{
			Method:      string(p.Method),
			Amount:      float64(p.Amount) / 100,
			AmountGiven: float64(p.AmountGiven) / 100,
			Change:      float64(p.Change) / 100,
		})
	}

	return receipt, nil
}

// PrintOrderReceipt builds and prints the receipt for an order.
func (s *PrinterService) PrintOrderReceipt(ctx context.Context, vendorID, orderID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.BuildOrderReceipt(ctx, vendorID, orderID)
	if err != nil {
		return nil, err
	}

	data := s.FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (order %s): %v", orderID, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// PrintUPISlip prints a QR slip carrying a UPI payment intent for the amount
// due, so the customer can scan it at the counter.
func (s *PrinterService) PrintUPISlip(ctx context.Context, vendorID uuid.UUID, payeeVPA, payeeName string, amount int64) error {
	if payeeVPA == "" {
		return apperror.NewBadRequestError("UPI VPA is not configured")
	}

	storeName := payeeName
	settings, err := s.settingsRepo.GetByVendorID(ctx, vendorID)
	if err == nil && settings != nil && storeName == "" {
		storeName = settings.StoreName
	}

	intent := pos.UPIIntent(payeeVPA, storeName, amount)

	doc := printer.NewDocument(s.paperWidth)
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text("SCAN TO PAY").
		SetBold(false).
		TextF("Rs %.2f", float64(amount)/100).
		LineFeed().
		QRCode(intent, 6).
		LineFeed().
		Text(payeeVPA).
		FeedLines(3).
		PartialCut()

	if err := s.printer.Print(doc.Bytes()); err != nil {
		return fmt.Errorf("failed to print UPI slip: %w", err)
	}
	return nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func (s *PrinterService) FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(s.paperWidth)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("Tax ID: %s", r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Order info
	doc.KeyValue("Order:", r.OrderNumber).
		KeyValue("Date:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %.2f each", item.UnitPrice)
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", r.SubTotal))
	if r.Discount > 0 {
		doc.KeyValue("Discount:", fmt.Sprintf("-%.2f", r.Discount))
	}
	if r.Tax > 0 {
		doc.KeyValue("Tax:", fmt.Sprintf("%.2f", r.Tax))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.Total)).
		SetBold(false)

	// Payments, one line per tender
	for _, p := range r.Payments {
		doc.KeyValue(p.Method+":", fmt.Sprintf("%.2f", p.Amount))
	}
	if r.Change > 0 {
		doc.KeyValue("Change:", fmt.Sprintf("%.2f", r.Change))
	}

	doc.Separator('-')

	// Footer
	footer := r.Footer
	if footer == "" {
		footer = "Thank you for shopping with us!"
	}
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text(footer).
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
