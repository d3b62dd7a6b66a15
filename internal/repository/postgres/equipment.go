package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lendahand-backend/internal/domain"
	"lendahand-backend/internal/repository"
)

const equipmentColumns = `id, vendor_email, COALESCE(vendor_phone, ''), name, category, COALESCE(description, ''), price, price_unit, location, COALESCE(image_url, ''), status, stock_quantity, min_stock_threshold, COALESCE(rating, 0), COALESCE(reviews_count, 0), created_on`

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	query := `INSERT INTO equipment (vendor_email, vendor_phone, name, category, description, price, price_unit, location, image_url, status, stock_quantity, min_stock_threshold, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	return r.db.QueryRowContext(ctx, query, eq.VendorEmail, eq.VendorPhone, eq.Name, eq.Category, eq.Description, eq.Price, eq.PriceUnit, eq.Location, eq.ImageURL, eq.Status, eq.StockQuantity, eq.MinStockThreshold, time.Now()).Scan(&eq.ID)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	eq := &domain.Equipment{}
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&eq.ID, &eq.VendorEmail, &eq.VendorPhone, &eq.Name, &eq.Category, &eq.Description, &eq.Price, &eq.PriceUnit, &eq.Location, &eq.ImageURL, &eq.Status, &eq.StockQuantity, &eq.MinStockThreshold, &eq.Rating, &eq.ReviewsCount, &eq.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func (r *equipmentRepository) GetOwned(ctx context.Context, id int32, vendorEmail string) (*domain.Equipment, error) {
	eq := &domain.Equipment{}
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1 AND vendor_email = $2`
	err := r.db.QueryRowContext(ctx, query, id, vendorEmail).Scan(&eq.ID, &eq.VendorEmail, &eq.VendorPhone, &eq.Name, &eq.Category, &eq.Description, &eq.Price, &eq.PriceUnit, &eq.Location, &eq.ImageURL, &eq.Status, &eq.StockQuantity, &eq.MinStockThreshold, &eq.Rating, &eq.ReviewsCount, &eq.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func (r *equipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	query := `UPDATE equipment SET name=$1, category=$2, description=$3, price=$4, price_unit=$5, location=$6, image_url=$7, status=$8, stock_quantity=$9, min_stock_threshold=$10 WHERE id=$11 AND vendor_email=$12`
	res, err := r.db.ExecContext(ctx, query, eq.Name, eq.Category, eq.Description, eq.Price, eq.PriceUnit, eq.Location, eq.ImageURL, eq.Status, eq.StockQuantity, eq.MinStockThreshold, eq.ID, eq.VendorEmail)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, id int32, vendorEmail string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1 AND vendor_email = $2`, id, vendorEmail)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock is a single guarded read-modify-write so concurrent vendor
// adjustments and rental transitions cannot lose updates.
func (r *equipmentRepository) AdjustStock(ctx context.Context, id int32, vendorEmail string, delta int32) (int32, error) {
	query := `UPDATE equipment
	          SET stock_quantity = GREATEST(stock_quantity + $1, 0),
	              status = CASE WHEN GREATEST(stock_quantity + $1, 0) <= 0 THEN 'unavailable' ELSE 'available' END
	          WHERE id = $2 AND vendor_email = $3
	          RETURNING stock_quantity`
	var newStock int32
	err := r.db.QueryRowContext(ctx, query, delta, id, vendorEmail).Scan(&newStock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return newStock, nil
}

func (r *equipmentRepository) ListAvailable(ctx context.Context) ([]domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE status = 'available' AND stock_quantity > 0 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEquipment(rows)
}

func (r *equipmentRepository) ListByVendor(ctx context.Context, vendorEmail string) ([]domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE vendor_email = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, vendorEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEquipment(rows)
}

func (r *equipmentRepository) ListAll(ctx context.Context, status, search string) ([]domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argIdx)
		args = append(args, status)
		argIdx++
	}
	if search != "" {
		query += fmt.Sprintf(` AND (name ILIKE $%d OR category ILIKE $%d OR vendor_email ILIKE $%d)`, argIdx, argIdx, argIdx)
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEquipment(rows)
}

func (r *equipmentRepository) SetRating(ctx context.Context, id int32, rating float64, count int32) error {
	res, err := r.db.ExecContext(ctx, `UPDATE equipment SET rating = $1, reviews_count = $2 WHERE id = $3`, rating, count, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("equipment %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanEquipment(rows *sql.Rows) ([]domain.Equipment, error) {
	var items []domain.Equipment
	for rows.Next() {
		var eq domain.Equipment
		if err := rows.Scan(&eq.ID, &eq.VendorEmail, &eq.VendorPhone, &eq.Name, &eq.Category, &eq.Description, &eq.Price, &eq.PriceUnit, &eq.Location, &eq.ImageURL, &eq.Status, &eq.StockQuantity, &eq.MinStockThreshold, &eq.Rating, &eq.ReviewsCount, &eq.CreatedOn); err != nil {
			return nil, err
		}
		items = append(items, eq)
	}
	return items, rows.Err()
}
