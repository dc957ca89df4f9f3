package middlewares

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// StoreScopeKey is the context key under which the tenant store id is stored.
const StoreScopeKey = "storeID"

// StoreScope resolves the tenant from the X-Store-Id header. Requests
// without the header run in single-tenant legacy mode and see unscoped rows.
func StoreScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader("X-Store-Id"); raw != "" {
			if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
				c.Set(StoreScopeKey, uint(id))
			}
		}
		c.Next()
	}
}

// StoreIDFromContext returns the scoped store id, or nil in legacy mode.
func StoreIDFromContext(c *gin.Context) *uint {
	if v, ok := c.Get(StoreScopeKey); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}
