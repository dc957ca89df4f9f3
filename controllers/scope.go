package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/middlewares"
)

// storeID returns the tenant id resolved by the StoreScope middleware, or
// nil in single-tenant legacy mode.
func storeID(c *gin.Context) *uint {
	return middlewares.StoreIDFromContext(c)
}

// scoped narrows a query to the request's tenant when one is present.
func scoped(c *gin.Context, q *gorm.DB) *gorm.DB {
	if id := storeID(c); id != nil {
		return q.Where("store_id = ?", *id)
	}
	return q
}
