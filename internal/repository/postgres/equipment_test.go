package postgres

import (
	"context"
	"testing"

	"lendahand-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEquipmentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	eq := &domain.Equipment{
		VendorEmail:       "vendor@agrirent.test",
		VendorPhone:       "9000090000",
		Name:              "Tractor",
		Category:          "tractor",
		Price:             decimal.NewFromInt(500),
		PriceUnit:         "day",
		Location:          "Pune",
		Status:            domain.EquipmentStatusAvailable,
		StockQuantity:     3,
		MinStockThreshold: 1,
	}

	mock.ExpectQuery("INSERT INTO equipment").
		WithArgs(eq.VendorEmail, eq.VendorPhone, eq.Name, eq.Category, eq.Description, eq.Price, eq.PriceUnit, eq.Location, eq.ImageURL, eq.Status, eq.StockQuantity, eq.MinStockThreshold, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	assert.NoError(t, repo.Create(ctx, eq))
	assert.Equal(t, int32(42), eq.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_AdjustStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	t.Run("ClampsAtZero", func(t *testing.T) {
		// Removing 10 units from a stock of 3 lands on 0, not -7.
		mock.ExpectQuery("UPDATE equipment").
			WithArgs(int32(-10), int32(42), "vendor@agrirent.test").
			WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}).AddRow(0))

		newStock, err := repo.AdjustStock(ctx, 42, "vendor@agrirent.test", -10)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), newStock)
	})

	t.Run("NotOwned", func(t *testing.T) {
		mock.ExpectQuery("UPDATE equipment").
			WithArgs(int32(1), int32(42), "other@vendor.test").
			WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}))

		_, err := repo.AdjustStock(ctx, 42, "other@vendor.test", 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_UpdateNotOwned(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE equipment SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(ctx, &domain.Equipment{ID: 42, VendorEmail: "other@vendor.test", Price: decimal.NewFromInt(500)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_ListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	t.Run("StatusFilter", func(t *testing.T) {
		mock.ExpectQuery(`FROM equipment WHERE 1=1 AND status = \$1 ORDER BY created_on`).
			WithArgs("unavailable").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.ListAll(ctx, "unavailable", "")
		assert.NoError(t, err)
	})

	t.Run("StatusAndSearch", func(t *testing.T) {
		mock.ExpectQuery(`AND status = \$1 AND \(name ILIKE \$2 OR category ILIKE \$2 OR vendor_email ILIKE \$2\)`).
			WithArgs("available", "%tractor%").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.ListAll(ctx, "available", "tractor")
		assert.NoError(t, err)
	})

	t.Run("Unfiltered", func(t *testing.T) {
		mock.ExpectQuery(`FROM equipment WHERE 1=1 ORDER BY created_on`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.ListAll(ctx, "", "")
		assert.NoError(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_SetRating(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE equipment SET rating").
		WithArgs(4.5, int32(2), int32(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.SetRating(ctx, 42, 4.5, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
