package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"schoolcomm/internal/model"
)

type feeRepository struct {
	db *sqlx.DB
}

func NewFeeRepository(db *sqlx.DB) FeeRepository {
	return &feeRepository{db: db}
}

func (r *feeRepository) Create(ctx context.Context, fee *model.FeeRecord) error {
	query := `
		INSERT INTO fee_records (student_id, fee_type, amount, due_date, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, amount_paid, payment_status, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		fee.StudentID, fee.FeeType, fee.Amount, fee.DueDate, fee.Notes,
	).Scan(&fee.ID, &fee.AmountPaid, &fee.PaymentStatus, &fee.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert fee record: %w", err)
	}
	return nil
}

func (r *feeRepository) GetByID(ctx context.Context, id int64) (*model.FeeRecord, error) {
	query := `
		SELECT id, student_id, fee_type, amount, amount_paid, due_date,
		       payment_status, payment_date, payment_method, notes, created_at
		FROM fee_records WHERE id = $1
	`
	var fee model.FeeRecord
	err := r.db.GetContext(ctx, &fee, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrFeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get fee record: %w", err)
	}
	return &fee, nil
}

func (r *feeRepository) List(ctx context.Context, studentID *int64, paymentStatus *string) ([]model.FeeRecord, error) {
	query := `
		SELECT f.id, f.student_id, f.fee_type, f.amount, f.amount_paid,
		       f.due_date, f.payment_status, f.payment_date, f.payment_method,
		       f.notes, f.created_at,
		       s.full_name AS student_name, s.student_code
		FROM fee_records f
		JOIN students s ON f.student_id = s.id
		WHERE 1=1
	`
	var args []interface{}
	n := 1

	if studentID != nil {
		query += fmt.Sprintf(" AND f.student_id = $%d", n)
		args = append(args, *studentID)
		n++
	}
	if paymentStatus != nil {
		query += fmt.Sprintf(" AND f.payment_status = $%d", n)
		args = append(args, *paymentStatus)
		n++
	}

	query += " ORDER BY f.due_date DESC"

	var fees []model.FeeRecord
	if err := r.db.SelectContext(ctx, &fees, query, args...); err != nil {
		return nil, fmt.Errorf("list fee records: %w", err)
	}
	return fees, nil
}

func (r *feeRepository) RecordPayment(ctx context.Context, id int64, totalPaid float64, status string, method, notes *string, paidAt time.Time) (*model.FeeRecord, error) {
	query := `
		UPDATE fee_records
		SET amount_paid = $1, payment_status = $2, payment_date = $3,
		    payment_method = $4, notes = $5
		WHERE id = $6
		RETURNING id, student_id, fee_type, amount, amount_paid, due_date,
		          payment_status, payment_date, payment_method, notes, created_at
	`
	var fee model.FeeRecord
	err := r.db.GetContext(ctx, &fee, query, totalPaid, status, paidAt, method, notes, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrFeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}
	return &fee, nil
}
