package repository

import (
	"github.com/Ah-ugo/amber-hotels-menu/internal/models"

	"gorm.io/gorm"
)

type TableRepository interface {
	Create(table *models.Table) error
	GetAll() ([]models.Table, error)
	GetByNumber(tableNumber int) (*models.Table, error)
	DeleteByNumber(tableNumber int) (int64, error)
	ExistsNumber(tableNumber int) (bool, error)
	Count() (int64, error)
}

type tableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) Create(table *models.Table) error {
	return r.db.Create(table).Error
}

func (r *tableRepository) GetAll() ([]models.Table, error) {
	var tables []models.Table
	err := r.db.Order("table_number").Find(&tables).Error
	return tables, err
}

func (r *tableRepository) GetByNumber(tableNumber int) (*models.Table, error) {
	var table models.Table
	err := r.db.Where("table_number = ?", tableNumber).First(&table).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *tableRepository) DeleteByNumber(tableNumber int) (int64, error) {
	result := r.db.Where("table_number = ?", tableNumber).Delete(&models.Table{})
	return result.RowsAffected, result.Error
}

func (r *tableRepository) ExistsNumber(tableNumber int) (bool, error) {
	var count int64
	err := r.db.Model(&models.Table{}).Where("table_number = ?", tableNumber).Count(&count).Error
	return count > 0, err
}

func (r *tableRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Table{}).Count(&count).Error
	return count, err
}
