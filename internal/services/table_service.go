package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Ah-ugo/amber-hotels-menu/internal/models"
	"github.com/Ah-ugo/amber-hotels-menu/internal/repository"
	"github.com/Ah-ugo/amber-hotels-menu/internal/validation"

	qrcode "github.com/skip2/go-qrcode"
)

type TableService interface {
	GetTables() ([]models.Table, error)
	CreateTable(tableNumber int) (*models.Table, error)
	DeleteTable(tableNumber int) error
	QRImagePath(tableNumber int) (string, error)
}

type tableService struct {
	tableRepo repository.TableRepository
	baseURL   string
	uploadDir string
}

func NewTableService(tableRepo repository.TableRepository, baseURL, uploadDir string) TableService {
	return &tableService{tableRepo: tableRepo, baseURL: baseURL, uploadDir: uploadDir}
}

func (s *tableService) GetTables() ([]models.Table, error) {
	tables, err := s.tableRepo.GetAll()
	if err != nil {
		return nil, ConnectivityError{Op: "list tables", Err: err}
	}
	return tables, nil
}

// CreateTable registers a table number and writes a QR PNG encoding the
// customer menu URL for that table.
func (s *tableService) CreateTable(tableNumber int) (*models.Table, error) {
	if err := validation.ValidateTableNumber(tableNumber); err != nil {
		return nil, err
	}
	exists, err := s.tableRepo.ExistsNumber(tableNumber)
	if err != nil {
		return nil, ConnectivityError{Op: "create table", Err: err}
	}
	if exists {
		return nil, validation.ValidationError{
			Field:   "table_number",
			Message: fmt.Sprintf("table %d already exists", tableNumber),
		}
	}

	content := fmt.Sprintf("%s/?table=%d", s.baseURL, tableNumber)
	filename := s.qrFilename(tableNumber)
	if err := qrcode.WriteFile(content, qrcode.Medium, 256, filepath.Join(s.uploadDir, filename)); err != nil {
		return nil, fmt.Errorf("failed to write QR image: %w", err)
	}

	table := &models.Table{
		TableNumber: tableNumber,
		QRCode:      content,
		QRImageURL:  "/uploads/" + filename,
	}
	if err := s.tableRepo.Create(table); err != nil {
		return nil, ConnectivityError{Op: "create table", Err: err}
	}
	return table, nil
}

// DeleteTable removes the registry entry and its QR image. Historical orders
// tagged with the table number are untouched.
func (s *tableService) DeleteTable(tableNumber int) error {
	affected, err := s.tableRepo.DeleteByNumber(tableNumber)
	if err != nil {
		return ConnectivityError{Op: "delete table", Err: err}
	}
	if affected == 0 {
		return NotFoundError{Resource: "table", ID: strconv.Itoa(tableNumber)}
	}
	if err := os.Remove(filepath.Join(s.uploadDir, s.qrFilename(tableNumber))); err != nil && !os.IsNotExist(err) {
		log.Printf("table service: failed to remove QR image for table %d: %v", tableNumber, err)
	}
	return nil
}

func (s *tableService) QRImagePath(tableNumber int) (string, error) {
	if _, err := s.tableRepo.GetByNumber(tableNumber); err != nil {
		return "", NotFoundError{Resource: "table", ID: strconv.Itoa(tableNumber)}
	}
	return filepath.Join(s.uploadDir, s.qrFilename(tableNumber)), nil
}

func (s *tableService) qrFilename(tableNumber int) string {
	return fmt.Sprintf("qr_table_%d.png", tableNumber)
}
