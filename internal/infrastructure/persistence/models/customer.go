package models

import (
	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer aggregate
type CustomerModel struct {
	AggregateModel
	TenantID        uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_customer_tenant_number,priority:1"`
	Number          string                 `gorm:"type:varchar(30);not null;uniqueIndex:idx_customer_tenant_number,priority:2"`
	Kind            invoicing.CustomerKind `gorm:"type:varchar(20);not null;default:'business'"`
	Name            string                 `gorm:"type:varchar(200);not null"`
	ContactPerson   string                 `gorm:"type:varchar(100)"`
	Email           string                 `gorm:"type:varchar(200);index"`
	Phone           string                 `gorm:"type:varchar(30)"`
	Address         AddressColumns         `gorm:"embedded;embeddedPrefix:address_"`
	VATID           string                 `gorm:"column:vat_id;type:varchar(20)"`
	PaymentTermDays *int
	Notes           string `gorm:"type:text"`
	Active          bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *invoicing.Customer {
	return &invoicing.Customer{
		TenantAggregateRoot: m.ToTenantRoot(m.TenantID),
		Number:              m.Number,
		Kind:                m.Kind,
		Name:                m.Name,
		ContactPerson:       m.ContactPerson,
		Email:               m.Email,
		Phone:               m.Phone,
		Address:             m.Address.ToDomain(),
		VATID:               m.VATID,
		PaymentTermDays:     m.PaymentTermDays,
		Notes:               m.Notes,
		Active:              m.Active,
	}
}

// FromDomain populates the persistence model from a domain Customer
func (m *CustomerModel) FromDomain(c *invoicing.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.TenantID = c.TenantID
	m.Number = c.Number
	m.Kind = c.Kind
	m.Name = c.Name
	m.ContactPerson = c.ContactPerson
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = AddressColumnsFromDomain(c.Address)
	m.VATID = c.VATID
	m.PaymentTermDays = c.PaymentTermDays
	m.Notes = c.Notes
	m.Active = c.Active
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer
func CustomerModelFromDomain(c *invoicing.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// ProductModel is the persistence model for the Product aggregate
type ProductModel struct {
	AggregateModel
	TenantID    uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_product_tenant_sku,priority:1"`
	SKU         string                `gorm:"column:sku;type:varchar(50);not null;uniqueIndex:idx_product_tenant_sku,priority:2"`
	Name        string                `gorm:"type:varchar(200);not null"`
	Description string                `gorm:"type:text"`
	Unit        string                `gorm:"type:varchar(20);not null"`
	UnitPrice   decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	TaxCategory invoicing.TaxCategory `gorm:"type:varchar(20);not null;default:'standard'"`
	Active      bool                  `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *invoicing.Product {
	return &invoicing.Product{
		TenantAggregateRoot: m.ToTenantRoot(m.TenantID),
		SKU:                 m.SKU,
		Name:                m.Name,
		Description:         m.Description,
		Unit:                m.Unit,
		UnitPrice:           m.UnitPrice,
		TaxCategory:         m.TaxCategory,
		Active:              m.Active,
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *invoicing.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.TenantID = p.TenantID
	m.SKU = p.SKU
	m.Name = p.Name
	m.Description = p.Description
	m.Unit = p.Unit
	m.UnitPrice = p.UnitPrice
	m.TaxCategory = p.TaxCategory
	m.Active = p.Active
}

// ProductModelFromDomain creates a new persistence model from a domain Product
func ProductModelFromDomain(p *invoicing.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
