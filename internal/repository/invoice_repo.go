package repository

import (
	"context"

	"github.com/Praborkar/Inventory-Management-billing-System/internal/dto"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, inv *model.Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, int64, error)
	ListAll(ctx context.Context) ([]model.Invoice, error)
	// Recent returns the n most recently created invoices, newest first.
	Recent(ctx context.Context, n int) ([]model.Invoice, error)
	// NumbersTx reads every invoice number inside the create transaction so
	// the next sequential number is assigned against a consistent snapshot.
	NumbersTx(tx *gorm.DB) ([]string, error)
	// UpdateFields patches only the given columns. Invoices carry no
	// updated_at, so nothing else is touched. Returns false on unknown id.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (bool, error)
	// Delete removes the invoice and its items. Stock is NOT restored.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	DB() *gorm.DB
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository { return &invoiceRepo{db: db} }

func (r *invoiceRepo) DB() *gorm.DB { return r.db }

func (r *invoiceRepo) Create(ctx context.Context, tx *gorm.DB, inv *model.Invoice) error {
	return tx.WithContext(ctx).Create(inv).Error
}

func (r *invoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).Preload("Items").First(&inv, id).Error
	return &inv, err
}

func (r *invoiceRepo) List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Invoice{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&invoices).Error
	return invoices, total, err
}

func (r *invoiceRepo) ListAll(ctx context.Context) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).Preload("Items").Order("created_at ASC").Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) Recent(ctx context.Context, n int) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").Limit(n).
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) NumbersTx(tx *gorm.DB) ([]string, error) {
	var numbers []string
	err := tx.Model(&model.Invoice{}).Pluck("invoice_number", &numbers).Error
	return numbers, err
}

func (r *invoiceRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Invoice{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected > 0, res.Error
}

func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Select("Items").Delete(&model.Invoice{ID: id})
	return res.RowsAffected > 0, res.Error
}
