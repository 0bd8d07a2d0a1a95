package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"payment-service/clients"
	"payment-service/models"
	"payment-service/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Enrichment sentinels. Enrichment never fails the request; lookup failures
// degrade to these fixed display values.
const (
	enrichNone            = "N/A"
	enrichPatientNotFound = "Patient not found"
	enrichDoctorNotFound  = "Doctor not found"
	enrichCommError       = "Communication error"
)

// notifyPlaceholderPatient and notifyPlaceholderDoctor stand in when the
// appointment could not be fetched at dispatch time.
const (
	notifyPlaceholderPatient = "Patient"
	notifyPlaceholderDoctor  = "Doctor"
)

// ServiceError is a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// PaymentService defines the business logic interface.
type PaymentService interface {
	List(ctx context.Context) ([]models.Payment, *ServiceError)
	Get(ctx context.Context, id uint) (*models.Payment, *ServiceError)
	ListByAppointment(ctx context.Context, appointmentID uint) ([]models.Payment, *ServiceError)
	ListByStatus(ctx context.Context, status string) ([]models.Payment, *ServiceError)
	Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, *ServiceError)
	Update(ctx context.Context, id uint, req *models.UpdatePaymentRequest) (*models.Payment, *ServiceError)
	Delete(ctx context.Context, id uint) *ServiceError
}

type paymentServiceImpl struct {
	repo          repository.PaymentRepository
	appointments  clients.AppointmentLookup
	notifications clients.NotificationDispatcher
	logger        *zap.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	repo repository.PaymentRepository,
	appointments clients.AppointmentLookup,
	notifications clients.NotificationDispatcher,
	logger *zap.Logger,
) PaymentService {
	return &paymentServiceImpl{
		repo:          repo,
		appointments:  appointments,
		notifications: notifications,
		logger:        logger,
	}
}

// List returns all payments, each enriched with patient and doctor names.
func (s *paymentServiceImpl) List(ctx context.Context) ([]models.Payment, *ServiceError) {
	payments, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list payments", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch payments"}
	}
	for i := range payments {
		s.enrich(ctx, &payments[i])
	}
	return payments, nil
}

// Get returns a single payment by id, enriched.
func (s *paymentServiceImpl) Get(ctx context.Context, id uint) (*models.Payment, *ServiceError) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: fmt.Sprintf("Payment %d not found", id)}
		}
		s.logger.Error("Failed to fetch payment", zap.Uint("payment_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch payment"}
	}
	s.enrich(ctx, payment)
	return payment, nil
}

// ListByAppointment returns the payments linked to one appointment.
func (s *paymentServiceImpl) ListByAppointment(ctx context.Context, appointmentID uint) ([]models.Payment, *ServiceError) {
	payments, err := s.repo.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		s.logger.Error("Failed to list payments by appointment",
			zap.Uint("appointment_id", appointmentID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch payments"}
	}
	for i := range payments {
		s.enrich(ctx, &payments[i])
	}
	return payments, nil
}

// ListByStatus returns the payments currently in the given status.
func (s *paymentServiceImpl) ListByStatus(ctx context.Context, status string) ([]models.Payment, *ServiceError) {
	payments, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		s.logger.Error("Failed to list payments by status",
			zap.String("status", status), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch payments"}
	}
	for i := range payments {
		s.enrich(ctx, &payments[i])
	}
	return payments, nil
}

// Create records a new payment. The referenced appointment must resolve
// before anything is persisted: a payment against a missing or unreachable
// appointment is rejected outright. A completion notification is sent
// best-effort when the resulting status is COMPLETED.
func (s *paymentServiceImpl) Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, *ServiceError) {
	appt, err := s.appointments.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			s.logger.Warn("Appointment does not exist",
				zap.Uint("appointment_id", req.AppointmentID))
			return nil, &ServiceError{
				StatusCode: 404,
				Message:    fmt.Sprintf("Appointment %d does not exist", req.AppointmentID),
			}
		}
		s.logger.Error("Failed to reach appointment service",
			zap.Uint("appointment_id", req.AppointmentID), zap.Error(err))
		return nil, &ServiceError{
			StatusCode: 502,
			Message:    "Failed to communicate with the appointment service",
		}
	}

	payment := &models.Payment{
		AppointmentID: req.AppointmentID,
		Amount:        req.Amount,
		Status:        req.Status,
		Reference:     req.Reference,
	}
	if req.PaymentDate != nil {
		payment.PaymentDate = *req.PaymentDate
	} else {
		payment.PaymentDate = time.Now()
	}
	if payment.Status == "" {
		payment.Status = models.StatusPending
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		s.logger.Error("Failed to persist payment", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to save payment"}
	}

	s.enrich(ctx, payment)

	if payment.Status == models.StatusCompleted {
		s.notify(ctx, payment, models.EventPaymentCompleted, appt)
	}

	return payment, nil
}

// Update applies the changes and, when the status actually transitioned to
// COMPLETED or VOIDED, sends the matching notification. Unchanged status
// never triggers a notification, even if it already is COMPLETED or VOIDED.
func (s *paymentServiceImpl) Update(ctx context.Context, id uint, req *models.UpdatePaymentRequest) (*models.Payment, *ServiceError) {
	previous, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: fmt.Sprintf("Payment %d not found", id)}
		}
		s.logger.Error("Failed to fetch payment before update", zap.Uint("payment_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch payment"}
	}
	previousStatus := previous.Status

	payment, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: fmt.Sprintf("Payment %d not found", id)}
		}
		s.logger.Error("Failed to update payment", zap.Uint("payment_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update payment"}
	}

	s.enrich(ctx, payment)

	// The update already succeeded; a missing appointment here only degrades
	// the notification content.
	appt, apptErr := s.appointments.GetByID(ctx, payment.AppointmentID)
	if apptErr != nil {
		s.logger.Warn("Could not fetch appointment for notification",
			zap.Uint("payment_id", id),
			zap.Uint("appointment_id", payment.AppointmentID),
			zap.Error(apptErr),
		)
		appt = nil
	}

	if !strings.EqualFold(payment.Status, previousStatus) {
		switch payment.Status {
		case models.StatusCompleted:
			s.notify(ctx, payment, models.EventPaymentCompleted, appt)
		case models.StatusVoided:
			s.notify(ctx, payment, models.EventPaymentVoided, appt)
		}
	} else {
		s.logger.Debug("Payment status unchanged, no notification",
			zap.Uint("payment_id", id),
			zap.String("status", payment.Status),
		)
	}

	return payment, nil
}

// Delete removes a payment record. No side effects beyond the store call.
func (s *paymentServiceImpl) Delete(ctx context.Context, id uint) *ServiceError {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ServiceError{StatusCode: 404, Message: fmt.Sprintf("Payment %d not found", id)}
		}
		s.logger.Error("Failed to delete payment", zap.Uint("payment_id", id), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete payment"}
	}
	return nil
}

// enrich resolves the transient patient/doctor display names from the
// appointments service. It is total: every failure path degrades to a
// sentinel value and the record is always usable afterwards.
func (s *paymentServiceImpl) enrich(ctx context.Context, p *models.Payment) {
	if p.AppointmentID == 0 {
		p.PatientName = enrichNone
		p.DoctorName = enrichNone
		return
	}

	appt, err := s.appointments.GetByID(ctx, p.AppointmentID)
	if err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			s.logger.Warn("Appointment not found while enriching payment",
				zap.Uint("payment_id", p.ID),
				zap.Uint("appointment_id", p.AppointmentID),
			)
			p.PatientName = enrichPatientNotFound
			p.DoctorName = enrichDoctorNotFound
			return
		}
		s.logger.Error("Appointment lookup failed while enriching payment",
			zap.Uint("payment_id", p.ID),
			zap.Uint("appointment_id", p.AppointmentID),
			zap.Error(err),
		)
		p.PatientName = enrichCommError
		p.DoctorName = enrichCommError
		return
	}

	p.PatientName = appt.PatientName
	p.DoctorName = appt.DoctorName
}

// notify builds and submits the email notification for a payment state
// transition. Delivery is best-effort: any failure is logged and swallowed,
// never surfaced to the caller.
func (s *paymentServiceImpl) notify(ctx context.Context, p *models.Payment, eventType string, appt *clients.Appointment) {
	patientName := notifyPlaceholderPatient
	doctorName := notifyPlaceholderDoctor
	if appt != nil {
		if appt.PatientName != "" {
			patientName = appt.PatientName
		}
		if appt.DoctorName != "" {
			doctorName = appt.DoctorName
		}
	}

	var subject, message string
	switch eventType {
	case models.EventPaymentCompleted:
		subject = "Payment Completed for Your Appointment"
		message = fmt.Sprintf(
			"Dear %s,\n\nYour payment of %.2f USD for the appointment with Dr. %s has been completed successfully.\n\nPayment reference: %s",
			patientName, p.Amount, doctorName, p.Reference,
		)
	case models.EventPaymentVoided:
		subject = "Payment Voided Notice"
		message = fmt.Sprintf(
			"Dear %s,\n\nYour payment of %.2f USD for the appointment with Dr. %s has been VOIDED.\n\nPayment reference: %s",
			patientName, p.Amount, doctorName, p.Reference,
		)
	default:
		s.logger.Warn("Unsupported notification event type", zap.String("event_type", eventType))
		return
	}

	notification := &clients.Notification{
		Type:       eventType,
		Subject:    subject,
		Message:    message,
		Channel:    clients.ChannelEmail,
		ServiceRef: fmt.Sprintf("PaymentService:%d", p.ID),
	}
	if appt != nil {
		notification.RecipientID = appt.PatientID
	}
	if appt != nil && appt.PatientEmail != "" {
		notification.RecipientEmail = appt.PatientEmail
	} else {
		s.logger.Warn("Patient email unavailable, using fallback address",
			zap.Uint("payment_id", p.ID),
			zap.Uint("appointment_id", p.AppointmentID),
		)
		notification.RecipientEmail = clients.FallbackEmail
	}

	if err := s.notifications.Send(ctx, notification); err != nil {
		s.logger.Error("Failed to send payment notification",
			zap.Uint("payment_id", p.ID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Payment notification sent",
		zap.Uint("payment_id", p.ID),
		zap.String("event_type", eventType),
	)
}
