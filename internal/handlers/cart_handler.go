package handlers

import (
	"net/http"

	"github.com/Ah-ugo/amber-hotels-menu/internal/cart"
	"github.com/Ah-ugo/amber-hotels-menu/internal/services"

	"github.com/gin-gonic/gin"
)

// CartHandler exposes the session-scoped cart. Every route resolves the cart
// through the injected store using the X-Session-ID header; there is one cart
// per browsing session.
type CartHandler struct {
	store        *cart.Store
	menuService  services.MenuService
	orderService services.OrderService
}

func NewCartHandler(store *cart.Store, menuService services.MenuService, orderService services.OrderService) *CartHandler {
	return &CartHandler{
		store:        store,
		menuService:  menuService,
		orderService: orderService,
	}
}

type cartView struct {
	Lines      []cart.Line `json:"lines"`
	TotalItems int         `json:"total_items"`
	TotalPrice float64     `json:"total_price"`
	Notes      string      `json:"notes,omitempty"`
}

func viewOf(c *cart.Cart) cartView {
	return cartView{
		Lines:      c.Lines(),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		Notes:      c.Notes(),
	}
}

func (h *CartHandler) sessionID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-Session-ID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header is required"})
		return "", false
	}
	return id, true
}

func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, viewOf(h.store.Get(sessionID)))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req struct {
		ItemID uint `json:"item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	item, err := h.menuService.GetItem(req.ItemID)
	if err != nil {
		respondError(c, err)
		return
	}

	cr := h.store.Get(sessionID)
	cr.AddItem(*item)
	h.store.Persist(sessionID)
	c.JSON(http.StatusOK, viewOf(cr))
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "item_id")
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	cr := h.store.Get(sessionID)
	cr.UpdateQuantity(itemID, req.Quantity)
	h.store.Persist(sessionID)
	c.JSON(http.StatusOK, viewOf(cr))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	cr := h.store.Get(sessionID)
	cr.Clear()
	h.store.Persist(sessionID)
	c.JSON(http.StatusOK, viewOf(cr))
}

// Submit snapshots the session cart and hands it to the submission boundary.
// The cart is cleared only after the order is accepted; any failure leaves it
// intact so the customer can retry.
func (h *CartHandler) Submit(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req struct {
		TableNumber int    `json:"table_number"`
		Notes       string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	cr := h.store.Get(sessionID)
	if req.Notes != "" {
		cr.SetNotes(req.Notes)
	}
	snap := cr.Snapshot()

	submit := services.SubmitRequest{
		TableNumber:    req.TableNumber,
		Notes:          snap.Notes,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	}
	for _, line := range snap.Lines {
		submit.Lines = append(submit.Lines, services.SubmitLine{
			ItemID:   line.Item.ID,
			Quantity: line.Quantity,
		})
	}

	order, err := h.orderService.Submit(submit)
	if err != nil {
		respondError(c, err)
		return
	}

	cr.Clear()
	h.store.Drop(sessionID)
	c.JSON(http.StatusCreated, order)
}
