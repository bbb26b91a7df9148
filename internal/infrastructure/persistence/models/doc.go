// Package models contains GORM persistence models that map to database tables.
// Domain types in internal/domain carry no ORM tags; every model here has a
// XModelFromDomain constructor and a ToDomain method.
//
// Files:
//   - base.go: shared columns (ID, timestamps, version, tenant, address)
//   - company.go, customer.go, product.go: master data
//   - invoice.go: invoices including lines, payments and dunning state
//   - dunning.go: dunning notices and runs
//   - numbering.go: number sequences and idempotent assignments
//   - offer.go: quotes and booked expenses
package models
