package services

import (
	"errors"
	"strconv"

	"github.com/Ah-ugo/amber-hotels-menu/internal/models"
	"github.com/Ah-ugo/amber-hotels-menu/internal/repository"
	"github.com/Ah-ugo/amber-hotels-menu/internal/validation"

	"gorm.io/gorm"
)

// MenuItemUpdate carries the fields of a partial menu item edit; nil fields
// are left unchanged.
type MenuItemUpdate struct {
	Name     *string
	Price    *float64
	Category *string
	ImageURL *string
}

type MenuService interface {
	GetMenu() ([]models.MenuItem, error)
	GetItem(id uint) (*models.MenuItem, error)
	CreateItem(name string, price float64, category, imageURL string) (*models.MenuItem, error)
	UpdateItem(id uint, update MenuItemUpdate) (*models.MenuItem, error)
	DeleteItem(id uint) error
}

type menuService struct {
	menuRepo repository.MenuRepository
}

func NewMenuService(menuRepo repository.MenuRepository) MenuService {
	return &menuService{menuRepo: menuRepo}
}

func (s *menuService) GetMenu() ([]models.MenuItem, error) {
	items, err := s.menuRepo.GetAll()
	if err != nil {
		return nil, ConnectivityError{Op: "list menu", Err: err}
	}
	return items, nil
}

func (s *menuService) GetItem(id uint) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{Resource: "menu item", ID: strconv.FormatUint(uint64(id), 10)}
		}
		return nil, ConnectivityError{Op: "get menu item", Err: err}
	}
	return item, nil
}

func (s *menuService) CreateItem(name string, price float64, category, imageURL string) (*models.MenuItem, error) {
	if err := validation.ValidateMenuItem(name, price, category); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		Name:     name,
		Price:    price,
		Category: category,
		ImageURL: imageURL,
	}
	if err := s.menuRepo.Create(item); err != nil {
		return nil, ConnectivityError{Op: "create menu item", Err: err}
	}
	return item, nil
}

func (s *menuService) UpdateItem(id uint, update MenuItemUpdate) (*models.MenuItem, error) {
	item, err := s.GetItem(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Price != nil {
		item.Price = *update.Price
	}
	if update.Category != nil {
		item.Category = *update.Category
	}
	if update.ImageURL != nil {
		item.ImageURL = *update.ImageURL
	}

	if err := validation.ValidateMenuItem(item.Name, item.Price, item.Category); err != nil {
		return nil, err
	}
	if err := s.menuRepo.Update(item); err != nil {
		return nil, ConnectivityError{Op: "update menu item", Err: err}
	}
	return item, nil
}

func (s *menuService) DeleteItem(id uint) error {
	affected, err := s.menuRepo.Delete(id)
	if err != nil {
		return ConnectivityError{Op: "delete menu item", Err: err}
	}
	if affected == 0 {
		return NotFoundError{Resource: "menu item", ID: strconv.FormatUint(uint64(id), 10)}
	}
	return nil
}
