package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabax/cabax-backend/models"
)

func TestOpenSessionOccupiesTable(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)
	table := seedTable(t, db, "A1")

	session, err := billing.OpenSession(OpenSessionInput{
		TableID: table.ID,
		Guests:  3,
	})
	require.NoError(t, err)

	assert.Equal(t, models.SessionActive, session.Status)
	assert.Equal(t, 0, session.CurrentTotal)
	assert.Equal(t, 20, session.TaxRate, "tax rate defaults when not given")

	var reloaded models.Table
	require.NoError(t, db.First(&reloaded, table.ID).Error)
	assert.Equal(t, models.TableOccupied, reloaded.Status)
}

func TestOpenSessionStrictGuard(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)
	table := seedTable(t, db, "A1")

	_, err := billing.OpenSession(OpenSessionInput{TableID: table.ID, Guests: 2, StrictTableGuard: true})
	require.NoError(t, err)

	_, err = billing.OpenSession(OpenSessionInput{TableID: table.ID, Guests: 2, StrictTableGuard: true})
	assert.ErrorIs(t, err, ErrTableOccupied)

	// With the guard off a second party can share the table.
	_, err = billing.OpenSession(OpenSessionInput{TableID: table.ID, Guests: 2})
	assert.NoError(t, err)
}

func TestOpenSessionUnknownTable(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	_, err := billing.OpenSession(OpenSessionInput{TableID: 999})
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestPlaceOrderAccumulatesTotal(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)
	table := seedTable(t, db, "A1")
	beer := seedMenuItem(t, db, "ビール", 800, 200)
	champagne := seedMenuItem(t, db, "シャンパン", 15000, 5000)

	session, err := billing.OpenSession(OpenSessionInput{TableID: table.ID, Guests: 2})
	require.NoError(t, err)

	_, err = billing.PlaceOrder(PlaceOrderInput{SessionID: session.ID, MenuItemID: beer.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = billing.PlaceOrder(PlaceOrderInput{SessionID: session.ID, MenuItemID: champagne.ID, Quantity: 1})
	require.NoError(t, err)

	var reloaded models.Session
	require.NoError(t, db.First(&reloaded, session.ID).Error)
	assert.Equal(t, 800*2+15000, reloaded.CurrentTotal)
}

func TestPlaceOrderSnapshotsPrice(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)
	table := seedTable(t, db, "A1")
	beer := seedMenuItem(t, db, "ビール", 800, 200)

	session, err := billing.OpenSession(OpenSessionInput{TableID: table.ID})
	require.NoError(t, err)

	order, err := billing.PlaceOrder(PlaceOrderInput{SessionID: session.ID, MenuItemID: beer.ID, Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, 800, order.Price)

	// A later catalog price change must not touch the placed line.
	require.NoError(t, db.Model(&models.MenuItem{}).Where("id = ?", beer.ID).Update("price", 1000).Error)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, 800, reloaded.Price)
}

func TestPlaceOrderCustomName(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)
	table := seedTable(t, db, "A1")
	beer := seedMenuItem(t, db, "ビール", 800, 200)

	session, err := billing.OpenSession(OpenSessionInput{TableID: table.ID})
	require.NoError(t, err)

	order, err := billing.PlaceOrder(PlaceOrderInput{
		SessionID:  session.ID,
		MenuItemID: beer.ID,
		Quantity:   1,
		ItemName:   "お客様ボトル",
	})
	require.NoError(t, err)
	assert.Equal(t, "お客様ボトル", order.DisplayName())
}

func TestAddChargeIsServedImmediately(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)
	table := seedTable(t, db, "A1")

	session, err := billing.OpenSession(OpenSessionInput{TableID: table.ID})
	require.NoError(t, err)

	order, err := billing.AddCharge(nil, session.ID, "セット料金", 5000, 2)
	require.NoError(t, err)

	assert.True(t, order.IsServed)
	assert.Equal(t, models.OrderKindCharge, order.Kind)
	assert.Equal(t, 10000, order.LineTotal())

	var reloaded models.Session
	require.NoError(t, db.First(&reloaded, session.ID).Error)
	assert.Equal(t, 10000, reloaded.CurrentTotal)
}

func TestExtendSessionDuplicatesNominationFees(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)
	table := seedTable(t, db, "A1")

	session, err := billing.OpenSession(OpenSessionInput{TableID: table.ID})
	require.NoError(t, err)

	_, err = billing.AddCharge(nil, session.ID, models.InHouseNominationPrefix+":れな", 3000, 1)
	require.NoError(t, err)
	_, err = billing.AddCharge(nil, session.ID, "セット料金", 5000, 1)
	require.NoError(t, err)

	extended, added, err := billing.ExtendSession(session.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, extended.ExtensionCount)
	assert.Equal(t, []string{models.InHouseNominationPrefix + ":れな"}, added,
		"only the nomination fee recurs, the set fee does not")

	var count int64
	db.Model(&models.Order{}).
		Where("session_id = ? AND charge_label = ?", session.ID, models.InHouseNominationPrefix+":れな").
		Count(&count)
	assert.EqualValues(t, 2, count)

	var reloaded models.Session
	require.NoError(t, db.First(&reloaded, session.ID).Error)
	assert.Equal(t, 3000+5000+3000, reloaded.CurrentTotal)
	assert.Equal(t, reloaded.CurrentTotal, extended.CurrentTotal)
}

func TestExtendSessionSharedLabelCounter(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)
	table := seedTable(t, db, "A1")

	session, err := billing.OpenSession(OpenSessionInput{TableID: table.ID})
	require.NoError(t, err)

	// Two fees with the identical label share one counter, so one extension
	// adds nothing: two copies already exist for extension_count+1 == 2.
	label := models.InHouseNominationPrefix + ":みゆ"
	_, err = billing.AddCharge(nil, session.ID, label, 3000, 1)
	require.NoError(t, err)
	_, err = billing.AddCharge(nil, session.ID, label, 3000, 1)
	require.NoError(t, err)

	_, added, err := billing.ExtendSession(session.ID)
	require.NoError(t, err)
	assert.Empty(t, added)

	var count int64
	db.Model(&models.Order{}).Where("session_id = ? AND charge_label = ?", session.ID, label).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestExtendSessionRepeatedBlocks(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)
	table := seedTable(t, db, "A1")

	session, err := billing.OpenSession(OpenSessionInput{TableID: table.ID})
	require.NoError(t, err)

	label := models.InHouseNominationPrefix + ":あいり"
	_, err = billing.AddCharge(nil, session.ID, label, 3000, 1)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, _, err = billing.ExtendSession(session.ID)
		require.NoError(t, err)
	}

	var count int64
	db.Model(&models.Order{}).Where("session_id = ? AND charge_label = ?", session.ID, label).Count(&count)
	assert.EqualValues(t, 4, count, "one copy per block: original + three extensions")
}

func TestCheckoutCompletesAndFreesTable(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)
	table := seedTable(t, db, "A1")

	session, err := billing.OpenSession(OpenSessionInput{TableID: table.ID})
	require.NoError(t, err)

	done, err := billing.Checkout(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionCompleted, done.Status)
	require.NotNil(t, done.EndTime)

	var reloaded models.Table
	require.NoError(t, db.First(&reloaded, table.ID).Error)
	assert.Equal(t, models.TableAvailable, reloaded.Status)

	// Checking out again is a no-op that keeps the original end time.
	firstEnd := *done.EndTime
	again, err := billing.Checkout(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionCompleted, again.Status)
	require.NotNil(t, again.EndTime)
	assert.Equal(t, firstEnd.Unix(), again.EndTime.Unix())
}
