package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"payment-service/models"
	"payment-service/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestCreate_Persists(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepository(gormDB)

	payment := &models.Payment{
		AppointmentID: 42,
		Amount:        50.00,
		PaymentDate:   time.Now(),
		Status:        models.StatusPending,
		Reference:     "REF-001",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "payments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), payment)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), payment.ID)
}

func TestFindByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments"`)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	p, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, p)
}

func TestFindByID_Found(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepository(gormDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "appointment_id", "amount", "payment_date", "status", "reference", "created_at", "updated_at"}).
		AddRow(7, 42, 50.00, now, models.StatusPending, "REF-7", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments"`)).
		WillReturnRows(rows)

	p, err := repo.FindByID(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), p.ID)
	assert.Equal(t, uint(42), p.AppointmentID)
	assert.Equal(t, models.StatusPending, p.Status)
}

func TestFindByAppointmentID(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepository(gormDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "appointment_id", "amount", "payment_date", "status", "reference", "created_at", "updated_at"}).
		AddRow(1, 42, 50.00, now, models.StatusPending, "REF-1", now, now).
		AddRow(2, 42, 10.00, now, models.StatusCompleted, "REF-2", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments" WHERE appointment_id = $1`)).
		WithArgs(42).
		WillReturnRows(rows)

	payments, err := repo.FindByAppointmentID(context.Background(), 42)
	assert.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestFindByStatus(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepository(gormDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "appointment_id", "amount", "payment_date", "status", "reference", "created_at", "updated_at"}).
		AddRow(3, 44, 75.25, now, models.StatusVoided, "REF-3", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments" WHERE status = $1`)).
		WithArgs(models.StatusVoided).
		WillReturnRows(rows)

	payments, err := repo.FindByStatus(context.Background(), models.StatusVoided)
	assert.NoError(t, err)
	assert.Len(t, payments, 1)
	assert.Equal(t, models.StatusVoided, payments[0].Status)
}

func TestUpdate_AppliesChanges(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepository(gormDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "appointment_id", "amount", "payment_date", "status", "reference", "created_at", "updated_at"}).
		AddRow(7, 42, 30.00, now, models.StatusPending, "REF-7", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments"`)).
		WillReturnRows(rows)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "payments"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	newStatus := models.StatusVoided
	p, err := repo.Update(context.Background(), 7, &models.UpdatePaymentRequest{Status: &newStatus})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusVoided, p.Status)
}

func TestUpdate_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments"`)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	newStatus := models.StatusCompleted
	p, err := repo.Update(context.Background(), 99, &models.UpdatePaymentRequest{Status: &newStatus})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, p)
}

func TestUpdate_NoFieldsSkipsWrite(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepository(gormDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "appointment_id", "amount", "payment_date", "status", "reference", "created_at", "updated_at"}).
		AddRow(7, 42, 30.00, now, models.StatusPending, "REF-7", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments"`)).
		WillReturnRows(rows)

	p, err := repo.Update(context.Background(), 7, &models.UpdatePaymentRequest{})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, p.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_Deletes(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "payments"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 7)
	assert.NoError(t, err)
}

func TestDelete_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "payments"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
