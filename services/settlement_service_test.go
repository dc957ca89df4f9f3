package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabax/cabax-backend/models"
)

func TestSettlementLockConflict(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)
	settlement := NewSettlementService(db)
	table := seedTable(t, db, "A1")

	session, err := billing.OpenSession(OpenSessionInput{TableID: table.ID})
	require.NoError(t, err)

	locked, err := settlement.Start(session.ID, "田中")
	require.NoError(t, err)
	assert.True(t, locked.IsSettling)
	assert.Equal(t, "田中", locked.SettlingBy)

	_, err = settlement.Start(session.ID, "山田")
	require.Error(t, err)

	var conflict *SettlementConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "田中", conflict.HeldBy)
	assert.Greater(t, conflict.RemainingSeconds, 170)
	assert.LessOrEqual(t, conflict.RemainingSeconds, 180)
	assert.Contains(t, err.Error(), "田中 is settling this session")
}

func TestSettlementLockStaleTakeover(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)
	settlement := NewSettlementService(db)
	table := seedTable(t, db, "A1")

	session, err := billing.OpenSession(OpenSessionInput{TableID: table.ID})
	require.NoError(t, err)

	stale := time.Now().Add(-SettlementLockTTL - time.Second)
	require.NoError(t, db.Model(&models.Session{}).Where("id = ?", session.ID).Updates(map[string]interface{}{
		"is_settling": true,
		"settling_by": "田中",
		"settling_at": stale,
	}).Error)

	taken, err := settlement.Start(session.ID, "山田")
	require.NoError(t, err)
	assert.Equal(t, "山田", taken.SettlingBy)
}

func TestSettlementCancelHasNoOwnershipCheck(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)
	settlement := NewSettlementService(db)
	table := seedTable(t, db, "A1")

	session, err := billing.OpenSession(OpenSessionInput{TableID: table.ID})
	require.NoError(t, err)

	_, err = settlement.Start(session.ID, "田中")
	require.NoError(t, err)

	// Any device may release the lock.
	cleared, err := settlement.Cancel(session.ID)
	require.NoError(t, err)
	assert.False(t, cleared.IsSettling)
	assert.Empty(t, cleared.SettlingBy)
	assert.Nil(t, cleared.SettlingAt)

	_, err = settlement.Start(session.ID, "山田")
	assert.NoError(t, err)
}

func TestSettlementUnknownSession(t *testing.T) {
	db := setupTestDB(t)
	settlement := NewSettlementService(db)

	_, err := settlement.Start(42, "田中")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = settlement.Cancel(42)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCheckoutReleasesSettlementLock(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)
	settlement := NewSettlementService(db)
	table := seedTable(t, db, "A1")

	session, err := billing.OpenSession(OpenSessionInput{TableID: table.ID})
	require.NoError(t, err)

	_, err = settlement.Start(session.ID, "田中")
	require.NoError(t, err)

	done, err := billing.Checkout(session.ID)
	require.NoError(t, err)
	assert.False(t, done.IsSettling)
	assert.Empty(t, done.SettlingBy)
}
