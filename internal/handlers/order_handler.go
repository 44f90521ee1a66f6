package handlers

import (
	"net/http"
	"strconv"

	"github.com/Ah-ugo/amber-hotels-menu/internal/models"
	"github.com/Ah-ugo/amber-hotels-menu/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(value), true
}

// CreateOrder accepts the wire shape the customer frontend posts directly:
// a table number plus item_id/quantity pairs. It feeds the same submission
// boundary as the session cart.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req struct {
		TableNumber int    `json:"table_number"`
		Notes       string `json:"notes"`
		Items       []struct {
			ItemID   uint `json:"item_id"`
			Quantity int  `json:"quantity"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	submit := services.SubmitRequest{
		TableNumber:    req.TableNumber,
		Notes:          req.Notes,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	}
	for _, item := range req.Items {
		submit.Lines = append(submit.Lines, services.SubmitLine{
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
		})
	}

	order, err := h.orderService.Submit(submit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetTableOrders(c *gin.Context) {
	tableNumber, err := strconv.Atoi(c.Param("table_number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table number"})
		return
	}

	orders, err := h.orderService.OrdersForTable(tableNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateStatus handles the staff status select: a form field carrying one of
// pending, preparing, served.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	status := models.OrderStatus(c.PostForm("status"))
	if err := h.orderService.UpdateStatus(id, status); err != nil {
		respondError(c, err)
		return
	}

	order, err := h.orderService.GetOrder(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order": order,
		"total": h.orderService.OrderTotal(order),
	})
}

func (h *OrderHandler) Dashboard(c *gin.Context) {
	stats, err := h.orderService.Dashboard()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
