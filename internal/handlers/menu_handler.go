package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Ah-ugo/amber-hotels-menu/internal/services"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	menuService services.MenuService
	uploadDir   string
}

func NewMenuHandler(menuService services.MenuService, uploadDir string) *MenuHandler {
	return &MenuHandler{menuService: menuService, uploadDir: uploadDir}
}

func (h *MenuHandler) GetMenu(c *gin.Context) {
	items, err := h.menuService.GetMenu()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// saveImage stores an uploaded menu image under the upload dir and returns
// its public URL. Returns "" when no file was attached.
func (h *MenuHandler) saveImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return "", nil
	}

	filename := fmt.Sprintf("menu_%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return "/uploads/" + filename, nil
}

func (h *MenuHandler) CreateItem(c *gin.Context) {
	name := c.PostForm("name")
	category := c.PostForm("category")
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return
	}

	imageURL, err := h.saveImage(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	item, err := h.menuService.CreateItem(name, price, category, imageURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *MenuHandler) UpdateItem(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var update services.MenuItemUpdate
	if name := c.PostForm("name"); name != "" {
		update.Name = &name
	}
	if category := c.PostForm("category"); category != "" {
		update.Category = &category
	}
	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}
		update.Price = &price
	}

	imageURL, err := h.saveImage(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if imageURL != "" {
		update.ImageURL = &imageURL
	}

	item, err := h.menuService.UpdateItem(id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) DeleteItem(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.menuService.DeleteItem(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu item deleted"})
}
