package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/floor"
	"github.com/cabax/cabax-backend/models"
	"github.com/cabax/cabax-backend/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// GetAllTables -> every table in scope
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := scoped(c, tc.DB).Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// CreateTable -> add a table; names are unique within a store
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		IsVIP bool   `json:"is_vip"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing int64
	scoped(c, tc.DB.Model(&models.Table{})).Where("name = ?", req.Name).Count(&existing)
	if existing > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("a table with this name already exists"))
		return
	}

	table := models.Table{
		StoreID: storeID(c),
		Name:    req.Name,
		IsVIP:   req.IsVIP,
		Status:  models.TableAvailable,
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	floor.BroadcastTableUpdate(table)
	utils.InfoLogger.Printf("table created: %s (vip=%v)", table.Name, table.IsVIP)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// UpdateTable -> rename / toggle VIP
func (tc *TableController) UpdateTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var req struct {
		Name  string `json:"name" binding:"required"`
		IsVIP bool   `json:"is_vip"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := scoped(c, tc.DB).First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var clash int64
	scoped(c, tc.DB.Model(&models.Table{})).
		Where("name = ? AND id != ?", req.Name, table.ID).
		Count(&clash)
	if clash > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("a table with this name already exists"))
		return
	}

	table.Name = req.Name
	table.IsVIP = req.IsVIP
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	floor.BroadcastTableUpdate(table)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> forbidden while occupied or referenced by an active session
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")

	var table models.Table
	if err := scoped(c, tc.DB).First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if table.Status == models.TableOccupied {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cannot delete an occupied table"))
		return
	}

	var activeSessions int64
	tc.DB.Model(&models.Session{}).
		Where("table_id = ? AND status = ?", table.ID, models.SessionActive).
		Count(&activeSessions)
	if activeSessions > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cannot delete a table with an active session"))
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}
