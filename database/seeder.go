package database

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/models"
	"github.com/cabax/cabax-backend/utils"
)

// Seed inserts the default rows a fresh single-tenant install needs: an
// admin login, the floor tables, the menu, casts and staff. Every block is
// guarded by an existence check, so calling it on every startup is safe and
// it never touches data after the first run.
func Seed(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("cabax2024"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := db.Create(&models.User{Username: "admin", Password: string(hashed)}).Error; err != nil {
			return err
		}
		utils.InfoLogger.Println("seeded default admin user")
	}

	var tableCount int64
	db.Model(&models.Table{}).Count(&tableCount)
	if tableCount == 0 {
		tables := []models.Table{
			{Name: "1", Status: models.TableAvailable},
			{Name: "2", Status: models.TableAvailable},
			{Name: "3", Status: models.TableAvailable, IsVIP: true},
			{Name: "4", Status: models.TableAvailable},
			{Name: "5", Status: models.TableAvailable},
			{Name: "6", Status: models.TableAvailable},
		}
		if err := db.Create(&tables).Error; err != nil {
			return err
		}
		utils.InfoLogger.Println("seeded default tables")
	}

	var menuCount int64
	db.Model(&models.MenuItem{}).Count(&menuCount)
	if menuCount == 0 {
		if err := db.Create(defaultMenu(nil)).Error; err != nil {
			return err
		}
		utils.InfoLogger.Println("seeded default menu")
	}

	var castCount int64
	db.Model(&models.Cast{}).Count(&castCount)
	if castCount == 0 {
		casts := []models.Cast{
			{StageName: "あいり", Rank: "レギュラー", SalaryType: "hourly", HourlyRate: 3000, DrinkBackRate: 10, CompanionBack: 3000, NominationBack: 1000},
			{StageName: "みゆ", Rank: "レギュラー", SalaryType: "hourly", HourlyRate: 3000, DrinkBackRate: 10, CompanionBack: 3000, NominationBack: 1000},
			{StageName: "れな", Rank: "エース", SalaryType: "hourly", HourlyRate: 4000, DrinkBackRate: 15, CompanionBack: 4000, NominationBack: 1500, SalesBackRate: 3},
			{StageName: "かな", Rank: "エース", SalaryType: "hourly", HourlyRate: 4000, DrinkBackRate: 15, CompanionBack: 4000, NominationBack: 1500, SalesBackRate: 3},
			{StageName: "りお", Rank: "ナンバー", SalaryType: "monthly", MonthlySalary: 500000, DrinkBackRate: 20, CompanionBack: 5000, NominationBack: 2000, SalesBackRate: 5},
		}
		if err := db.Create(&casts).Error; err != nil {
			return err
		}
		utils.InfoLogger.Println("seeded default casts")
	}

	var staffCount int64
	db.Model(&models.Staff{}).Count(&staffCount)
	if staffCount == 0 {
		staff := []models.Staff{
			{Name: "田中", Role: "manager", SalaryType: "monthly", SalaryAmount: 300000},
			{Name: "山田", Role: "waiter", SalaryType: "hourly", SalaryAmount: 1200},
			{Name: "佐藤", Role: "waiter", SalaryType: "hourly", SalaryAmount: 1200},
			{Name: "鈴木", Role: "kitchen", SalaryType: "daily", SalaryAmount: 10000},
			{Name: "高橋", Role: "catch", SalaryType: "hourly", SalaryAmount: 1000},
		}
		if err := db.Create(&staff).Error; err != nil {
			return err
		}
		utils.InfoLogger.Println("seeded default staff")
	}

	return nil
}

// SeedStoreDefaults provisions a newly licensed store with its own tables
// and menu.
func SeedStoreDefaults(db *gorm.DB, storeID uint) error {
	tables := []models.Table{
		{Name: "1番", StoreID: &storeID, Status: models.TableAvailable},
		{Name: "2番", StoreID: &storeID, Status: models.TableAvailable},
		{Name: "3番", StoreID: &storeID, Status: models.TableAvailable},
		{Name: "4番", StoreID: &storeID, Status: models.TableAvailable},
		{Name: "5番", StoreID: &storeID, Status: models.TableAvailable},
		{Name: "VIP1", StoreID: &storeID, Status: models.TableAvailable, IsVIP: true},
		{Name: "VIP2", StoreID: &storeID, Status: models.TableAvailable, IsVIP: true},
	}
	if err := db.Create(&tables).Error; err != nil {
		return err
	}
	return db.Create(defaultMenu(&storeID)).Error
}

func defaultMenu(storeID *uint) *[]models.MenuItem {
	items := []models.MenuItem{
		// Guest drinks, included in the set price.
		{Name: "ビール", Category: "drink", Price: 0},
		{Name: "カクテル", Category: "drink", Price: 0},
		{Name: "ソフトドリンク", Category: "drink", Price: 0},
		{Name: "ショット", Category: "drink", Price: 2000},
		{Name: "グラスワイン", Category: "drink", Price: 2000},
		// Cast drinks, the drink-back vehicle.
		{Name: "麦焼酎", Category: "castdrink", Price: 1000},
		{Name: "ウイスキー", Category: "castdrink", Price: 1000},
		// Table sets.
		{Name: "アイスセット", Category: "tableset", Price: 0},
		{Name: "ウーロン茶ピッチャー", Category: "tableset", Price: 0},
		{Name: "炭酸水", Category: "tableset", Price: 0},
		{Name: "ミネラルウォーター", Category: "tableset", Price: 0},
		// Champagne.
		{Name: "アルマンド ブリュット", Category: "champagne", Price: 120000, Premium: true},
		{Name: "アルマンド ロゼ", Category: "champagne", Price: 150000, Premium: true},
		{Name: "ドンペリ", Category: "champagne", Price: 45000, Premium: true},
		{Name: "サロン", Category: "champagne", Price: 80000, Premium: true},
		{Name: "ヴーヴクリコ", Category: "champagne", Price: 18000},
		{Name: "モエ", Category: "champagne", Price: 15000},
		// Wine and bottles.
		{Name: "赤ワイン", Category: "wine", Price: 8000},
		{Name: "白ワイン", Category: "wine", Price: 8000},
		{Name: "黒霧島", Category: "shochu", Price: 5000},
		{Name: "いいちこ", Category: "shochu", Price: 4500},
		{Name: "ジャックダニエル", Category: "whisky", Price: 12000},
		{Name: "山崎", Category: "whisky", Price: 35000, Premium: true},
		// Food.
		{Name: "フルーツ盛り", Category: "food", Price: 3000, Cost: 1200},
		{Name: "チョコレート", Category: "food", Price: 1500, Cost: 400},
		{Name: "ナッツ", Category: "food", Price: 1000, Cost: 250},
		{Name: "チーズ盛り", Category: "food", Price: 2000, Cost: 700},
		{Name: "枝豆", Category: "food", Price: 500, Cost: 100},
		{Name: "唐揚げ", Category: "food", Price: 800, Cost: 300},
	}
	for i := range items {
		items[i].StoreID = storeID
	}
	return &items
}
