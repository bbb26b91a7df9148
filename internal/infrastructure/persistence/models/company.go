package models

import (
	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/shopspring/decimal"
)

// CompanyModel is the persistence model for the Company aggregate
type CompanyModel struct {
	AggregateModel
	Name                   string                            `gorm:"type:varchar(200);not null"`
	LegalForm              string                            `gorm:"type:varchar(50)"`
	Address                AddressColumns                    `gorm:"embedded;embeddedPrefix:address_"`
	Email                  string                            `gorm:"type:varchar(200)"`
	Phone                  string                            `gorm:"type:varchar(50)"`
	VATID                  string                            `gorm:"column:vat_id;type:varchar(20)"`
	TaxNumber              string                            `gorm:"type:varchar(30)"`
	IBAN                   string                            `gorm:"column:iban;type:varchar(34)"`
	BIC                    string                            `gorm:"column:bic;type:varchar(11)"`
	BankName               string                            `gorm:"type:varchar(100)"`
	SmallBusiness          bool                              `gorm:"not null;default:false"`
	DefaultPaymentTermDays int                               `gorm:"not null;default:14"`
	StandardTaxRate        decimal.Decimal                   `gorm:"type:decimal(5,2);not null"`
	ReducedTaxRate         decimal.Decimal                   `gorm:"type:decimal(5,2);not null"`
	Numbering              JSON[invoicing.NumberingSettings] `gorm:"type:jsonb;not null"`
	Dunning                JSON[invoicing.DunningSettings]   `gorm:"type:jsonb;not null"`
	Active                 bool                              `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company
func (m *CompanyModel) ToDomain() *invoicing.Company {
	return &invoicing.Company{
		BaseAggregateRoot:      m.ToAggregateRoot(),
		Name:                   m.Name,
		LegalForm:              m.LegalForm,
		Address:                m.Address.ToDomain(),
		Email:                  m.Email,
		Phone:                  m.Phone,
		VATID:                  m.VATID,
		TaxNumber:              m.TaxNumber,
		IBAN:                   m.IBAN,
		BIC:                    m.BIC,
		BankName:               m.BankName,
		SmallBusiness:          m.SmallBusiness,
		DefaultPaymentTermDays: m.DefaultPaymentTermDays,
		TaxRates:               invoicing.TaxRates{Standard: m.StandardTaxRate, Reduced: m.ReducedTaxRate},
		Numbering:              m.Numbering.Data,
		Dunning:                m.Dunning.Data,
		Active:                 m.Active,
	}
}

// FromDomain populates the persistence model from a domain Company
func (m *CompanyModel) FromDomain(c *invoicing.Company) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.LegalForm = c.LegalForm
	m.Address = AddressColumnsFromDomain(c.Address)
	m.Email = c.Email
	m.Phone = c.Phone
	m.VATID = c.VATID
	m.TaxNumber = c.TaxNumber
	m.IBAN = c.IBAN
	m.BIC = c.BIC
	m.BankName = c.BankName
	m.SmallBusiness = c.SmallBusiness
	m.DefaultPaymentTermDays = c.DefaultPaymentTermDays
	m.StandardTaxRate = c.TaxRates.Standard
	m.ReducedTaxRate = c.TaxRates.Reduced
	m.Numbering = NewJSON(c.Numbering)
	m.Dunning = NewJSON(c.Dunning)
	m.Active = c.Active
}

// CompanyModelFromDomain creates a new persistence model from a domain Company
func CompanyModelFromDomain(c *invoicing.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}
