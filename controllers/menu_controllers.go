package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/models"
	"github.com/cabax/cabax-backend/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenuItems -> full catalog
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	var items []models.MenuItem
	if err := scoped(c, mc.DB).Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// CreateMenuItem -> add a catalog entry
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Category    string `json:"category" binding:"required"`
		Price       int    `json:"price"`
		Cost        int    `json:"cost"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url"`
		Stock       *int   `json:"stock"`
		Premium     bool   `json:"premium"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.MenuItem{
		StoreID:     storeID(c),
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Cost:        req.Cost,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		Premium:     req.Premium,
	}
	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenuItem -> price changes here never touch existing orders, which
// keep their creation-time snapshot
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	itemID := c.Param("item_id")

	var item models.MenuItem
	if err := scoped(c, mc.DB).First(&item, itemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Category    *string `json:"category"`
		Price       *int    `json:"price"`
		Cost        *int    `json:"cost"`
		Description *string `json:"description"`
		ImageURL    *string `json:"image_url"`
		Stock       *int    `json:"stock"`
		Premium     *bool   `json:"premium"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Cost != nil {
		item.Cost = *req.Cost
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.Stock != nil {
		item.Stock = req.Stock
	}
	if req.Premium != nil {
		item.Premium = *req.Premium
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem -> remove a catalog entry; past orders keep their snapshot
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	itemID := c.Param("item_id")

	var item models.MenuItem
	if err := scoped(c, mc.DB).First(&item, itemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := mc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"id": item.ID})
}
