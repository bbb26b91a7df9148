// Package invoicing holds the German invoicing domain: companies (tenants),
// customers, products, invoices with GoBD-compliant cancellation, tax regimes,
// gapless document numbering and the Mahnung escalation engine.
package invoicing
