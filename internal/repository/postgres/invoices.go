package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Lija868/invoice-gen/internal/models"
)

type InvoiceRepo struct {
	DB DBTX
}

const createInvoice = `-- name: CreateInvoice
INSERT INTO invoices (id, user_id, name, quantity, unit_price, tax, discount, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
`

// CreateBatch inserts all lines in a single pgx batch
func (r *InvoiceRepo) CreateBatch(ctx context.Context, invoices []models.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	now := time.Now()
	batch := &pgx.Batch{}
	for _, inv := range invoices {
		id := inv.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		batch.Queue(createInvoice, id, inv.UserID, inv.Name, inv.Quantity, inv.UnitPrice, inv.Tax, inv.Discount, now)
	}

	err := r.DB.SendBatch(ctx, batch).Close()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const listInvoices = `-- name: ListInvoices
SELECT id, user_id, name, quantity, unit_price, tax, discount, created_at, updated_at
FROM invoices
WHERE user_id = $1
ORDER BY seq
`

func (r *InvoiceRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Invoice, error) {
	rows, _ := r.DB.Query(ctx, listInvoices, userID)
	invoices, err := pgx.CollectRows(rows, rowToInvoice)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return invoices, nil
}

func rowToInvoice(row pgx.CollectableRow) (models.Invoice, error) {
	var i models.Invoice
	err := row.Scan(&i.ID, &i.UserID, &i.Name, &i.Quantity, &i.UnitPrice, &i.Tax, &i.Discount, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}
