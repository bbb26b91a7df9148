package models

import (
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/google/uuid"
)

// NumberSequenceModel holds the last value of one number range
type NumberSequenceModel struct {
	ID           uuid.UUID              `gorm:"type:uuid;primary_key"`
	TenantID     uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_sequence_scope,priority:1"`
	DocumentType invoicing.DocumentType `gorm:"type:varchar(20);not null;uniqueIndex:idx_sequence_scope,priority:2"`
	Year         int                    `gorm:"not null;uniqueIndex:idx_sequence_scope,priority:3"`
	Prefix       string                 `gorm:"type:varchar(10);not null"`
	Padding      int                    `gorm:"not null;default:5"`
	LastValue    int64                  `gorm:"not null;default:0"`
	UpdatedAt    time.Time              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (NumberSequenceModel) TableName() string {
	return "number_sequences"
}

// ToDomain converts the persistence model to a domain NumberSequence
func (m *NumberSequenceModel) ToDomain() *invoicing.NumberSequence {
	return &invoicing.NumberSequence{
		ID:           m.ID,
		TenantID:     m.TenantID,
		DocumentType: m.DocumentType,
		Year:         m.Year,
		Prefix:       m.Prefix,
		Padding:      m.Padding,
		LastValue:    m.LastValue,
		UpdatedAt:    m.UpdatedAt,
	}
}

// NumberSequenceModelFromDomain creates a new persistence model from a domain NumberSequence
func NumberSequenceModelFromDomain(s *invoicing.NumberSequence) *NumberSequenceModel {
	return &NumberSequenceModel{
		ID:           s.ID,
		TenantID:     s.TenantID,
		DocumentType: s.DocumentType,
		Year:         s.Year,
		Prefix:       s.Prefix,
		Padding:      s.Padding,
		LastValue:    s.LastValue,
		UpdatedAt:    s.UpdatedAt,
	}
}

// NumberAssignmentModel maps an idempotency key to the number it received
type NumberAssignmentModel struct {
	ID             uuid.UUID              `gorm:"type:uuid;primary_key"`
	TenantID       uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_key,priority:1"`
	DocumentType   invoicing.DocumentType `gorm:"type:varchar(20);not null;uniqueIndex:idx_assignment_key,priority:2"`
	IdempotencyKey string                 `gorm:"type:varchar(200);not null;uniqueIndex:idx_assignment_key,priority:3"`
	Number         string                 `gorm:"type:varchar(40);not null"`
	AssignedAt     time.Time              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (NumberAssignmentModel) TableName() string {
	return "number_assignments"
}

// ToDomain converts the persistence model to a domain NumberAssignment
func (m *NumberAssignmentModel) ToDomain() *invoicing.NumberAssignment {
	return &invoicing.NumberAssignment{
		ID:             m.ID,
		TenantID:       m.TenantID,
		DocumentType:   m.DocumentType,
		IdempotencyKey: m.IdempotencyKey,
		Number:         m.Number,
		AssignedAt:     m.AssignedAt,
	}
}

// NumberAssignmentModelFromDomain creates a new persistence model from a domain NumberAssignment
func NumberAssignmentModelFromDomain(a *invoicing.NumberAssignment) *NumberAssignmentModel {
	return &NumberAssignmentModel{
		ID:             a.ID,
		TenantID:       a.TenantID,
		DocumentType:   a.DocumentType,
		IdempotencyKey: a.IdempotencyKey,
		Number:         a.Number,
		AssignedAt:     a.AssignedAt,
	}
}
