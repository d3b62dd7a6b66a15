package postgres

import (
	"database/sql"

	"lendahand-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.EquipmentRepository
	repository.RentalRepository
	repository.ReviewRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		EquipmentRepository: NewEquipmentRepository(db),
		RentalRepository:    NewRentalRepository(db),
		ReviewRepository:    NewReviewRepository(db),
	}
}
