package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/models"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrTableNotFound    = errors.New("table not found")
	ErrTableOccupied    = errors.New("table already has an active session")
)

// BillingService owns the session ledger: opening sessions, accumulating
// orders and ad-hoc charges into the running total, extensions and checkout.
type BillingService struct {
	DB *gorm.DB
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{DB: db}
}

type OpenSessionInput struct {
	StoreID        *uint
	TableID        uint
	CastID         *uint
	Guests         int
	CatchStaff     string
	HasCompanion   bool
	CompanionName  string
	NominationType string
	NominationFee  int
	ShimeiCasts    string
	TaxRate        int
	// StrictTableGuard rejects a second active session on an occupied table.
	StrictTableGuard bool
}

// OpenSession seats a party: creates an active session with a zero total and
// flips the table to occupied.
func (s *BillingService) OpenSession(in OpenSessionInput) (*models.Session, error) {
	var session *models.Session
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.First(&table, in.TableID).Error; err != nil {
			return ErrTableNotFound
		}

		if in.StrictTableGuard {
			var active int64
			tx.Model(&models.Session{}).
				Where("table_id = ? AND status = ?", in.TableID, models.SessionActive).
				Count(&active)
			if active > 0 {
				return ErrTableOccupied
			}
		}

		taxRate := in.TaxRate
		if taxRate == 0 {
			taxRate = 20
		}

		session = &models.Session{
			StoreID:        in.StoreID,
			TableID:        in.TableID,
			CastID:         in.CastID,
			Guests:         in.Guests,
			CatchStaff:     in.CatchStaff,
			StartTime:      time.Now(),
			HasCompanion:   in.HasCompanion,
			CompanionName:  in.CompanionName,
			NominationType: in.NominationType,
			NominationFee:  in.NominationFee,
			ShimeiCasts:    in.ShimeiCasts,
			TaxRate:        taxRate,
			Status:         models.SessionActive,
		}
		if err := tx.Create(session).Error; err != nil {
			return err
		}

		table.Status = models.TableOccupied
		return tx.Save(&table).Error
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

type PlaceOrderInput struct {
	StoreID     *uint
	SessionID   uint
	MenuItemID  uint
	Quantity    int
	IsDrinkBack bool
	CastName    string
	ItemName    string
}

// PlaceOrder creates a catalog line with the price snapshotted from the menu
// at call time. Later catalog price changes never touch existing orders.
func (s *BillingService) PlaceOrder(in PlaceOrderInput) (*models.Order, error) {
	var order *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.First(&session, in.SessionID).Error; err != nil {
			return ErrSessionNotFound
		}

		var item models.MenuItem
		if err := tx.First(&item, in.MenuItemID).Error; err != nil {
			return ErrMenuItemNotFound
		}

		itemName := in.ItemName
		if itemName == "" {
			itemName = item.Name
		}

		order = &models.Order{
			StoreID:     in.StoreID,
			SessionID:   session.ID,
			Kind:        models.OrderKindCatalog,
			MenuItemID:  &item.ID,
			ItemName:    itemName,
			Quantity:    in.Quantity,
			Price:       item.Price,
			IsDrinkBack: in.IsDrinkBack,
			CastName:    in.CastName,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		return addToRunningTotal(tx, session.ID, order.LineTotal())
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// AddCharge appends an ad-hoc billable line (set fee, in-house nomination
// fee) with no catalog reference. Charges are served the moment they exist.
func (s *BillingService) AddCharge(storeID *uint, sessionID uint, label string, price, quantity int) (*models.Order, error) {
	if quantity <= 0 {
		quantity = 1
	}
	var order *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.First(&session, sessionID).Error; err != nil {
			return ErrSessionNotFound
		}

		order = &models.Order{
			StoreID:     storeID,
			SessionID:   session.ID,
			Kind:        models.OrderKindCharge,
			ChargeLabel: label,
			Quantity:    quantity,
			Price:       price,
			IsServed:    true,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		return addToRunningTotal(tx, session.ID, order.LineTotal())
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ExtendSession lengthens the paid time block and re-applies each in-house
// nomination charge once per block: a charge labelled with the nomination
// prefix is duplicated until extension_count+1 copies of its label exist.
// Charges sharing an identical label share one counter.
func (s *BillingService) ExtendSession(sessionID uint) (*models.Session, []string, error) {
	var session models.Session
	var added []string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&session, sessionID).Error; err != nil {
			return ErrSessionNotFound
		}

		session.ExtensionCount++
		if err := tx.Save(&session).Error; err != nil {
			return err
		}

		var nominations []models.Order
		if err := tx.Where("session_id = ? AND kind = ? AND charge_label LIKE ?",
			sessionID, models.OrderKindCharge, models.InHouseNominationPrefix+"%").
			Find(&nominations).Error; err != nil {
			return err
		}

		for _, nom := range nominations {
			var existing int64
			tx.Model(&models.Order{}).
				Where("session_id = ? AND charge_label = ?", sessionID, nom.ChargeLabel).
				Count(&existing)
			if existing >= int64(session.ExtensionCount+1) {
				continue
			}

			copyOrder := models.Order{
				StoreID:     nom.StoreID,
				SessionID:   sessionID,
				Kind:        models.OrderKindCharge,
				ChargeLabel: nom.ChargeLabel,
				Quantity:    1,
				Price:       nom.Price,
				IsServed:    true,
			}
			if err := tx.Create(&copyOrder).Error; err != nil {
				return err
			}
			if err := addToRunningTotal(tx, sessionID, copyOrder.LineTotal()); err != nil {
				return err
			}
			session.CurrentTotal += copyOrder.LineTotal()
			added = append(added, nom.ChargeLabel)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &session, added, nil
}

// Checkout soft-terminates the session, releases the settlement lock and
// frees the table. Calling it again on a completed session is a no-op that
// still answers with the session.
func (s *BillingService) Checkout(sessionID uint) (*models.Session, error) {
	var session models.Session
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&session, sessionID).Error; err != nil {
			return ErrSessionNotFound
		}

		if session.Status != models.SessionCompleted {
			now := time.Now()
			session.Status = models.SessionCompleted
			session.EndTime = &now
			session.IsSettling = false
			session.SettlingBy = ""
			session.SettlingAt = nil
			if err := tx.Save(&session).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Table{}).
			Where("id = ?", session.TableID).
			Update("status", models.TableAvailable).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// IsInHouseNomination reports whether a charge label belongs to the
// extension engine's recurring set.
func IsInHouseNomination(label string) bool {
	return strings.HasPrefix(label, models.InHouseNominationPrefix)
}

// addToRunningTotal increments the session total in SQL so concurrent lines
// on one session cannot lose updates.
func addToRunningTotal(tx *gorm.DB, sessionID uint, amount int) error {
	return tx.Model(&models.Session{}).
		Where("id = ?", sessionID).
		UpdateColumn("current_total", gorm.Expr("current_total + ?", amount)).Error
}
