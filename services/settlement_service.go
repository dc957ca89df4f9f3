package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/models"
)

// SettlementLockTTL bounds how long a settlement lock blocks other staff.
// After it elapses the lock is stale and any staff member may take it over.
const SettlementLockTTL = 180 * time.Second

// SettlementConflictError is returned when another staff member holds a
// live settlement lock on the session.
type SettlementConflictError struct {
	HeldBy           string
	RemainingSeconds int
}

func (e *SettlementConflictError) Error() string {
	return fmt.Sprintf("%s is settling this session (%d seconds remaining)", e.HeldBy, e.RemainingSeconds)
}

// SettlementService guards checkout finalization with a time-boxed,
// optimistic per-session lock. The check and the write are separate
// statements, matching the source system; the expiry window is what keeps a
// crashed holder from blocking forever.
type SettlementService struct {
	DB *gorm.DB
}

func NewSettlementService(db *gorm.DB) *SettlementService {
	return &SettlementService{DB: db}
}

// Start acquires the settlement lock for staffName. A live lock held by
// anyone is refused with the holder's name and the seconds left; a stale
// lock is taken over without an explicit release.
func (s *SettlementService) Start(sessionID uint, staffName string) (*models.Session, error) {
	var session models.Session
	if err := s.DB.First(&session, sessionID).Error; err != nil {
		return nil, ErrSessionNotFound
	}

	if session.IsSettling && session.SettlingAt != nil {
		elapsed := time.Since(*session.SettlingAt)
		if elapsed < SettlementLockTTL {
			return nil, &SettlementConflictError{
				HeldBy:           session.SettlingBy,
				RemainingSeconds: int(SettlementLockTTL.Seconds()) - int(elapsed.Seconds()),
			}
		}
	}

	now := time.Now()
	session.IsSettling = true
	session.SettlingBy = staffName
	session.SettlingAt = &now
	if err := s.DB.Save(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// Cancel clears the lock unconditionally. There is no ownership check; any
// staff device may release any lock.
func (s *SettlementService) Cancel(sessionID uint) (*models.Session, error) {
	var session models.Session
	if err := s.DB.First(&session, sessionID).Error; err != nil {
		return nil, ErrSessionNotFound
	}

	session.IsSettling = false
	session.SettlingBy = ""
	session.SettlingAt = nil
	if err := s.DB.Save(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}
