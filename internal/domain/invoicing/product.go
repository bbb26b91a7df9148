package invoicing

import (
	"strings"

	"github.com/faktura/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable article or service with a net list price
type Product struct {
	shared.TenantAggregateRoot
	SKU         string
	Name        string
	Description string
	Unit        string
	UnitPrice   decimal.Decimal // net
	TaxCategory TaxCategory
	Active      bool
}

// ProductDetails is the editable data of a product
type ProductDetails struct {
	SKU         string
	Name        string
	Description string
	Unit        string
	UnitPrice   decimal.Decimal
	TaxCategory TaxCategory
}

// NewProduct creates an active product
func NewProduct(tenantID uuid.UUID, d ProductDetails) (*Product, error) {
	p := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Active:              true,
	}
	if err := p.apply(d); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the product data
func (p *Product) Update(d ProductDetails) error {
	if err := p.apply(d); err != nil {
		return err
	}
	p.IncrementVersion()
	return nil
}

// NormalizeSKU returns the stored form of a SKU
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

func (p *Product) apply(d ProductDetails) error {
	sku := NormalizeSKU(d.SKU)
	if sku == "" || len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU must be 1 to 50 characters")
	}
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if d.UnitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if d.TaxCategory == "" {
		d.TaxCategory = TaxCategoryStandard
	}
	if !d.TaxCategory.IsValid() {
		return shared.NewDomainError("INVALID_TAX_CATEGORY", "Tax category must be standard or reduced")
	}
	unit := strings.TrimSpace(d.Unit)
	if unit == "" {
		unit = "Stk."
	}

	p.SKU = sku
	p.Name = name
	p.Description = strings.TrimSpace(d.Description)
	p.Unit = unit
	p.UnitPrice = d.UnitPrice.Round(4)
	p.TaxCategory = d.TaxCategory
	return nil
}

// Deactivate removes the product from selection lists
func (p *Product) Deactivate() error {
	if !p.Active {
		return shared.NewDomainError("INVALID_STATE", "Product is already inactive")
	}
	p.Active = false
	p.IncrementVersion()
	return nil
}

// ToLine builds an invoice line for quantity units of this product
func (p *Product) ToLine(quantity decimal.Decimal) InvoiceLine {
	id := p.ID
	return InvoiceLine{
		ProductID:   &id,
		Description: p.Name,
		Quantity:    quantity,
		Unit:        p.Unit,
		UnitPrice:   p.UnitPrice,
		TaxCategory: p.TaxCategory,
	}
}
