package models

import "time"

// Payment statuses observed across the clinic services.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusVoided    = "VOIDED"
)

// Notification event types emitted on payment state transitions.
const (
	EventPaymentCompleted = "PAYMENT_COMPLETED"
	EventPaymentVoided    = "PAYMENT_VOIDED"
)

type Payment struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID uint      `gorm:"index;not null" json:"appointment_id"`
	Amount        float64   `gorm:"not null" json:"amount"`
	PaymentDate   time.Time `json:"payment_date"`
	Status        string    `gorm:"type:varchar(20);index" json:"status"`
	Reference     string    `gorm:"type:varchar(255)" json:"reference"`

	// Display fields resolved from the appointments service on every
	// read/write. Never persisted.
	PatientName string `gorm:"-" json:"patient_name,omitempty"`
	DoctorName  string `gorm:"-" json:"doctor_name,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CreatePaymentRequest is the payload for POST /payments.
type CreatePaymentRequest struct {
	AppointmentID uint       `json:"appointment_id" binding:"required"`
	Amount        float64    `json:"amount" binding:"required,gt=0"`
	PaymentDate   *time.Time `json:"payment_date"`
	Status        string     `json:"status"`
	Reference     string     `json:"reference"`
}

// UpdatePaymentRequest is the payload for PUT /payments/:id.
type UpdatePaymentRequest struct {
	Amount      *float64   `json:"amount"`
	PaymentDate *time.Time `json:"payment_date"`
	Status      *string    `json:"status"`
	Reference   *string    `json:"reference"`
}
