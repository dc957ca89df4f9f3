package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/models"
	"github.com/cabax/cabax-backend/utils"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Login authenticates a store (manager PIN, staff PIN or password) or a
// legacy single-tenant user, and returns a JWT carrying the store and role.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var store models.Store
	if err := ac.DB.Where("username = ?", input.Username).First(&store).Error; err == nil {
		if store.Status == models.StoreSuspended {
			utils.RespondError(c, http.StatusForbidden, errors.New("this account is suspended"))
			return
		}
		if store.ExpiresAt.Before(time.Now()) {
			utils.RespondError(c, http.StatusForbidden, errors.New("license has expired"))
			return
		}

		role := ""
		switch {
		case store.ManagerPIN != "" && input.Password == store.ManagerPIN:
			role = "manager"
		case store.StaffPIN != "" && input.Password == store.StaffPIN:
			role = "staff"
		case store.HashedPassword != "" &&
			bcrypt.CompareHashAndPassword([]byte(store.HashedPassword), []byte(input.Password)) == nil:
			// Password login counts as the manager.
			role = "manager"
		}

		if role == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid PIN or password"))
			return
		}

		token, err := utils.GenerateToken(input.Username, &store.ID, store.Name, role)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}

		utils.InfoLogger.Printf("store login: %s (store=%d role=%s)", input.Username, store.ID, role)
		utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
			"access_token": token,
			"token_type":   "bearer",
			"store_id":     store.ID,
			"store_name":   store.Name,
			"role":         role,
		})
		return
	}

	// Legacy single-tenant login.
	var user models.User
	if err := ac.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid username or password"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid username or password"))
		return
	}

	token, err := utils.GenerateToken(user.Username, nil, "", "manager")
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"role":         "manager",
	})
}
