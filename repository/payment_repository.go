package repository

import (
	"context"

	"payment-service/models"

	"gorm.io/gorm"
)

// PaymentRepository defines data-access operations for payment records.
type PaymentRepository interface {
	FindAll(ctx context.Context) ([]models.Payment, error)
	FindByID(ctx context.Context, id uint) (*models.Payment, error)
	FindByAppointmentID(ctx context.Context, appointmentID uint) ([]models.Payment, error)
	FindByStatus(ctx context.Context, status string) ([]models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, id uint, req *models.UpdatePaymentRequest) (*models.Payment, error)
	Delete(ctx context.Context, id uint) error
}

// GormPaymentRepository implements PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository.
func NewGormPaymentRepository(db *gorm.DB) PaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) FindAll(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.WithContext(ctx).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *GormPaymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormPaymentRepository) FindByAppointmentID(ctx context.Context, appointmentID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.WithContext(ctx).Where("appointment_id = ?", appointmentID).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *GormPaymentRepository) FindByStatus(ctx context.Context, status string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.WithContext(ctx).Where("status = ?", status).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *GormPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// Update applies the non-nil fields of req to the stored record and returns
// the updated record. Returns gorm.ErrRecordNotFound when id does not exist.
func (r *GormPaymentRepository) Update(ctx context.Context, id uint, req *models.UpdatePaymentRequest) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.PaymentDate != nil {
		updates["payment_date"] = *req.PaymentDate
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Reference != nil {
		updates["reference"] = *req.Reference
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&payment).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &payment, nil
}

// Delete removes the record. Returns gorm.ErrRecordNotFound when nothing was
// deleted.
func (r *GormPaymentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Payment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
