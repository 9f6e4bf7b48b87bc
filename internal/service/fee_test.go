package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolcomm/internal/model"
)

type mockFeeRepo struct {
	CreateFn        func(ctx context.Context, fee *model.FeeRecord) error
	GetByIDFn       func(ctx context.Context, id int64) (*model.FeeRecord, error)
	ListFn          func(ctx context.Context, studentID *int64, paymentStatus *string) ([]model.FeeRecord, error)
	RecordPaymentFn func(ctx context.Context, id int64, totalPaid float64, status string, method, notes *string, paidAt time.Time) (*model.FeeRecord, error)
}

func (m *mockFeeRepo) Create(ctx context.Context, fee *model.FeeRecord) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, fee)
	}
	return nil
}

func (m *mockFeeRepo) GetByID(ctx context.Context, id int64) (*model.FeeRecord, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, model.ErrFeeNotFound
}

func (m *mockFeeRepo) List(ctx context.Context, studentID *int64, paymentStatus *string) ([]model.FeeRecord, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, studentID, paymentStatus)
	}
	return nil, nil
}

func (m *mockFeeRepo) RecordPayment(ctx context.Context, id int64, totalPaid float64, status string, method, notes *string, paidAt time.Time) (*model.FeeRecord, error) {
	if m.RecordPaymentFn != nil {
		return m.RecordPaymentFn(ctx, id, totalPaid, status, method, notes, paidAt)
	}
	return nil, model.ErrFeeNotFound
}

func newFeeFixture(feeRepo *mockFeeRepo, studentRepo *mockStudentRepo) (*FeeService, *mockNotificationRepo) {
	notifRepo := &mockNotificationRepo{}
	notifier := NewNotificationService(notifRepo, &mockPushTokenRepo{}, &recordingPusher{})
	return NewFeeService(feeRepo, studentRepo, notifier), notifRepo
}

func TestCreateFeeNotifiesParent(t *testing.T) {
	feeRepo := &mockFeeRepo{
		CreateFn: func(ctx context.Context, fee *model.FeeRecord) error {
			fee.ID = 60
			return nil
		},
	}
	studentRepo := &mockStudentRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*model.Student, error) {
			return &model.Student{ID: id, ParentID: 42}, nil
		},
	}
	svc, notifRepo := newFeeFixture(feeRepo, studentRepo)

	fee, err := svc.Create(context.Background(), &model.CreateFeeRequest{
		StudentID: 7,
		FeeType:   "Tuition",
		Amount:    150.50,
		DueDate:   "2025-05-01",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(60), fee.ID)

	created := notifRepo.Created()
	require.Len(t, created, 1)
	assert.Equal(t, int64(42), created[0].UserID)
	assert.Equal(t, model.NotificationTypeFee, created[0].Type)
	assert.Contains(t, created[0].Body, "Tuition")
	assert.Contains(t, created[0].Body, "$150.50")
	require.NotNil(t, created[0].ReferenceID)
	assert.Equal(t, int64(60), *created[0].ReferenceID)
}

func TestRecordPaymentAdvancesStatus(t *testing.T) {
	cases := []struct {
		name        string
		alreadyPaid float64
		payment     float64
		wantTotal   float64
		wantStatus  string
	}{
		{"first partial payment", 0, 40, 40, model.PaymentPartial},
		{"second payment completes", 40, 60, 100, model.PaymentPaid},
		{"overpayment still paid", 40, 100, 140, model.PaymentPaid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotTotal float64
			var gotStatus string
			feeRepo := &mockFeeRepo{
				GetByIDFn: func(ctx context.Context, id int64) (*model.FeeRecord, error) {
					return &model.FeeRecord{ID: id, Amount: 100, AmountPaid: tc.alreadyPaid}, nil
				},
				RecordPaymentFn: func(ctx context.Context, id int64, totalPaid float64, status string, method, notes *string, paidAt time.Time) (*model.FeeRecord, error) {
					gotTotal, gotStatus = totalPaid, status
					return &model.FeeRecord{ID: id, AmountPaid: totalPaid, PaymentStatus: status}, nil
				},
			}
			svc, _ := newFeeFixture(feeRepo, &mockStudentRepo{})

			_, err := svc.RecordPayment(context.Background(), &model.RecordPaymentRequest{
				FeeID:      60,
				AmountPaid: tc.payment,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.wantTotal, gotTotal)
			assert.Equal(t, tc.wantStatus, gotStatus)
		})
	}
}

func TestRecordPaymentAgainstMissingFee(t *testing.T) {
	svc, _ := newFeeFixture(&mockFeeRepo{}, &mockStudentRepo{})

	_, err := svc.RecordPayment(context.Background(), &model.RecordPaymentRequest{FeeID: 999, AmountPaid: 10})
	require.ErrorIs(t, err, model.ErrFeeNotFound)
}
