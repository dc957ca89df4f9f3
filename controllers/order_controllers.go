package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/floor"
	"github.com/cabax/cabax-backend/models"
	"github.com/cabax/cabax-backend/services"
	"github.com/cabax/cabax-backend/utils"
)

type OrderController struct {
	DB      *gorm.DB
	Billing *services.BillingService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db, Billing: services.NewBillingService(db)}
}

// GetAllOrders -> today's open work queue: unserved catalog lines of active
// sessions, with the table name resolved for the floor.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	q := oc.DB.
		Joins("JOIN sessions ON sessions.id = orders.session_id").
		Where("sessions.status = ? AND orders.kind = ?", models.SessionActive, models.OrderKindCatalog).
		Preload("MenuItem").
		Preload("Session").
		Order("orders.created_at")
	if id := storeID(c); id != nil {
		q = q.Where("orders.store_id = ?", *id)
	}
	if err := q.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tableNames := map[uint]string{}
	var tables []models.Table
	scoped(c, oc.DB).Find(&tables)
	for _, t := range tables {
		tableNames[t.ID] = t.Name
	}

	type queueEntry struct {
		ID        uint   `json:"id"`
		SessionID uint   `json:"session_id"`
		TableName string `json:"table_name"`
		Name      string `json:"name"`
		Quantity  int    `json:"quantity"`
		Price     int    `json:"price"`
		IsServed  bool   `json:"is_served"`
		CastName  string `json:"cast_name,omitempty"`
	}
	queue := make([]queueEntry, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		queue = append(queue, queueEntry{
			ID:        o.ID,
			SessionID: o.SessionID,
			TableName: tableNames[o.Session.TableID],
			Name:      o.DisplayName(),
			Quantity:  o.Quantity,
			Price:     o.Price,
			IsServed:  o.IsServed,
			CastName:  o.CastName,
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Order queue", queue)
}

// CreateOrder places a catalog order on a session. The price is snapshotted
// from the menu at this moment.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		SessionID   uint   `json:"session_id" binding:"required"`
		MenuItemID  uint   `json:"menu_item_id" binding:"required"`
		Quantity    int    `json:"quantity"`
		IsDrinkBack bool   `json:"is_drink_back"`
		CastName    string `json:"cast_name"`
		ItemName    string `json:"item_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	order, err := oc.Billing.PlaceOrder(services.PlaceOrderInput{
		StoreID:     storeID(c),
		SessionID:   req.SessionID,
		MenuItemID:  req.MenuItemID,
		Quantity:    req.Quantity,
		IsDrinkBack: req.IsDrinkBack,
		CastName:    req.CastName,
		ItemName:    req.ItemName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	floor.Broadcast(floor.Message{Event: floor.EventOrderUpdate, Data: order})
	utils.InfoLogger.Printf("order on session %d: %s x%d", order.SessionID, order.DisplayName(), order.Quantity)
	utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
}

// ServeOrder marks a queue line as delivered to the table.
func (oc *OrderController) ServeOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	order.IsServed = true
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	floor.Broadcast(floor.Message{Event: floor.EventOrderUpdate, Data: order})
	utils.RespondJSON(c, http.StatusOK, "Order served", order)
}
