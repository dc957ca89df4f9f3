package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/config"
	"github.com/cabax/cabax-backend/floor"
	"github.com/cabax/cabax-backend/models"
	"github.com/cabax/cabax-backend/services"
	"github.com/cabax/cabax-backend/utils"
)

type SessionController struct {
	DB         *gorm.DB
	Billing    *services.BillingService
	Settlement *services.SettlementService
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{
		DB:         db,
		Billing:    services.NewBillingService(db),
		Settlement: services.NewSettlementService(db),
	}
}

// orderLine is how an order renders on the floor: the resolved display name
// plus the snapshot price.
type orderLine struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Price       int    `json:"price"`
	Total       int    `json:"total"`
	Kind        string `json:"kind"`
	IsServed    bool   `json:"is_served"`
	IsDrinkBack bool   `json:"is_drink_back"`
	CastName    string `json:"cast_name,omitempty"`
}

func toOrderLines(orders []models.Order) []orderLine {
	lines := make([]orderLine, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		lines = append(lines, orderLine{
			ID:          o.ID,
			Name:        o.DisplayName(),
			Quantity:    o.Quantity,
			Price:       o.Price,
			Total:       o.LineTotal(),
			Kind:        o.Kind,
			IsServed:    o.IsServed,
			IsDrinkBack: o.IsDrinkBack,
			CastName:    o.CastName,
		})
	}
	return lines
}

// CreateSession seats a party at a table.
func (sc *SessionController) CreateSession(c *gin.Context) {
	var req struct {
		TableID        uint   `json:"table_id" binding:"required"`
		CastID         *uint  `json:"cast_id"`
		Guests         int    `json:"guests"`
		CatchStaff     string `json:"catch_staff"`
		HasCompanion   bool   `json:"has_companion"`
		CompanionName  string `json:"companion_name"`
		NominationType string `json:"nomination_type"`
		NominationFee  int    `json:"nomination_fee"`
		ShimeiCasts    string `json:"shimei_casts"`
		TaxRate        int    `json:"tax_rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Guests <= 0 {
		req.Guests = 1
	}

	session, err := sc.Billing.OpenSession(services.OpenSessionInput{
		StoreID:          storeID(c),
		TableID:          req.TableID,
		CastID:           req.CastID,
		Guests:           req.Guests,
		CatchStaff:       req.CatchStaff,
		HasCompanion:     req.HasCompanion,
		CompanionName:    req.CompanionName,
		NominationType:   req.NominationType,
		NominationFee:    req.NominationFee,
		ShimeiCasts:      req.ShimeiCasts,
		TaxRate:          req.TaxRate,
		StrictTableGuard: config.StrictTableGuard(),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	floor.BroadcastSessionUpdate(*session)
	utils.InfoLogger.Printf("session %d opened on table %d (%d guests)", session.ID, session.TableID, session.Guests)
	utils.RespondJSON(c, http.StatusCreated, "Session opened", session)
}

// GetActiveSessions -> every open party, table preloaded for the floor map.
func (sc *SessionController) GetActiveSessions(c *gin.Context) {
	var sessions []models.Session
	if err := scoped(c, sc.DB).
		Where("status = ?", models.SessionActive).
		Preload("Cast").
		Order("start_time").
		Find(&sessions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active sessions", sessions)
}

// GetSession -> one session with its order lines resolved.
func (sc *SessionController) GetSession(c *gin.Context) {
	sessionID := c.Param("session_id")

	var session models.Session
	if err := sc.DB.Preload("Cast").First(&session, sessionID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var orders []models.Order
	sc.DB.Where("session_id = ?", session.ID).
		Preload("MenuItem").
		Order("created_at").
		Find(&orders)

	utils.RespondJSON(c, http.StatusOK, "Session detail", gin.H{
		"session": session,
		"orders":  toOrderLines(orders),
	})
}

// GetSessionOrders -> the session's bill lines.
func (sc *SessionController) GetSessionOrders(c *gin.Context) {
	sessionID := c.Param("session_id")

	var session models.Session
	if err := sc.DB.First(&session, sessionID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var orders []models.Order
	if err := sc.DB.Where("session_id = ?", session.ID).
		Preload("MenuItem").
		Order("created_at").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session orders", gin.H{
		"orders":        toOrderLines(orders),
		"current_total": session.CurrentTotal,
	})
}

// AddCharge appends an ad-hoc billable line to the session.
func (sc *SessionController) AddCharge(c *gin.Context) {
	sessionIDStr := c.Param("session_id")
	sessionID, err := strconv.ParseUint(sessionIDStr, 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Label    string `json:"label" binding:"required"`
		Price    int    `json:"price"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := sc.Billing.AddCharge(storeID(c), uint(sessionID), req.Label, req.Price, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("charge on session %d: %s x%d @%d", sessionID, req.Label, order.Quantity, order.Price)
	utils.RespondJSON(c, http.StatusCreated, "Charge added", order)
}

// ExtendSession adds one paid time block and re-applies in-house nomination
// fees for the new block.
func (sc *SessionController) ExtendSession(c *gin.Context) {
	sessionIDStr := c.Param("session_id")
	sessionID, err := strconv.ParseUint(sessionIDStr, 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, added, err := sc.Billing.ExtendSession(uint(sessionID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	floor.BroadcastSessionUpdate(*session)
	utils.InfoLogger.Printf("session %d extended to block %d (%d fees re-applied)",
		session.ID, session.ExtensionCount+1, len(added))
	utils.RespondJSON(c, http.StatusOK, "Session extended", gin.H{
		"session":       session,
		"added_charges": added,
	})
}

// StartSettling acquires the settlement lock for the requesting staff.
func (sc *SessionController) StartSettling(c *gin.Context) {
	sessionIDStr := c.Param("session_id")
	sessionID, err := strconv.ParseUint(sessionIDStr, 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		StaffName string `json:"staff_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := sc.Settlement.Start(uint(sessionID), req.StaffName)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	floor.BroadcastSessionUpdate(*session)
	utils.RespondJSON(c, http.StatusOK, "Settlement started", session)
}

// CancelSettling releases the settlement lock.
func (sc *SessionController) CancelSettling(c *gin.Context) {
	sessionIDStr := c.Param("session_id")
	sessionID, err := strconv.ParseUint(sessionIDStr, 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := sc.Settlement.Cancel(uint(sessionID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	floor.BroadcastSessionUpdate(*session)
	utils.RespondJSON(c, http.StatusOK, "Settlement cancelled", session)
}

// Checkout completes the session and frees the table.
func (sc *SessionController) Checkout(c *gin.Context) {
	sessionIDStr := c.Param("session_id")
	sessionID, err := strconv.ParseUint(sessionIDStr, 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := sc.Billing.Checkout(uint(sessionID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	floor.BroadcastSessionCheckout(*session)
	utils.InfoLogger.Printf("session %d checked out, total %s", session.ID, utils.FormatYen(session.CurrentTotal))
	utils.RespondJSON(c, http.StatusOK, "Session completed", session)
}

// CallStaff pushes a staff-call event for the session's table to every
// connected floor device.
func (sc *SessionController) CallStaff(c *gin.Context) {
	sessionID := c.Param("session_id")

	var session models.Session
	if err := sc.DB.First(&session, sessionID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var table models.Table
	sc.DB.First(&table, session.TableID)

	floor.BroadcastStaffCall(session.ID, table.Name)
	utils.RespondJSON(c, http.StatusOK, "Staff called", gin.H{
		"session_id": session.ID,
		"table_name": table.Name,
	})
}
