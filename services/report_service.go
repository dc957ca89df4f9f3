package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/models"
)

// ReportService derives daily and monthly profit figures from a read-only
// snapshot of the window's sessions, orders and attendance. It persists
// nothing. All commission arithmetic truncates toward zero.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

// BackTotals is the four host commission buckets plus their sum.
type BackTotals struct {
	CompanionBack  int `json:"companion_back"`
	NominationBack int `json:"nomination_back"`
	DrinkBack      int `json:"drink_back"`
	SalesBack      int `json:"sales_back"`
	Total          int `json:"total"`
}

type SessionSummary struct {
	ID             uint   `json:"id"`
	TableID        uint   `json:"table_id"`
	CastID         *uint  `json:"cast_id,omitempty"`
	CastName       string `json:"cast_name,omitempty"`
	Guests         int    `json:"guests"`
	Total          int    `json:"total"`
	HasCompanion   bool   `json:"has_companion"`
	CompanionName  string `json:"companion_name,omitempty"`
	NominationType string `json:"nomination_type,omitempty"`
	ShimeiCasts    string `json:"shimei_casts,omitempty"`
	Status         string `json:"status"`
}

type DailyReport struct {
	Date            string           `json:"date"`
	SessionCount    int              `json:"session_count"`
	TotalGuests     int              `json:"total_guests"`
	TotalSales      int              `json:"total_sales"`
	TotalCost       int              `json:"total_cost"`
	CastPayroll     BackTotals       `json:"cast_payroll"`
	StaffCost       int              `json:"staff_cost"`
	GrossProfit     int              `json:"gross_profit"`
	OrderCount      int              `json:"order_count"`
	AttendanceCount int              `json:"attendance_count"`
	Sessions        []SessionSummary `json:"sessions"`
}

type DailySales struct {
	Date  string `json:"date"`
	Sales int    `json:"sales"`
}

// CastStat is one row of the monthly cast ranking.
type CastStat struct {
	Name        string `json:"name"`
	Sales       int    `json:"sales"`
	Nominations int    `json:"nominations"`
	Companions  int    `json:"companions"`
	DrinkCount  int    `json:"drink_count"`
}

type MonthlyReport struct {
	Year            int          `json:"year"`
	Month           int          `json:"month"`
	Period          string       `json:"period"`
	SessionCount    int          `json:"session_count"`
	TotalGuests     int          `json:"total_guests"`
	TotalSales      int          `json:"total_sales"`
	TotalCost       int          `json:"total_cost"`
	CompanionCount  int          `json:"companion_count"`
	NominationCount int          `json:"nomination_count"`
	ExtensionCount  int          `json:"extension_count"`
	CastPayroll     BackTotals   `json:"cast_payroll"`
	StaffCost       int          `json:"staff_cost"`
	GrossProfit     int          `json:"gross_profit"`
	GrossProfitRate float64      `json:"gross_profit_rate"`
	AvgPerGroup     int          `json:"avg_per_group"`
	AvgPerPerson    int          `json:"avg_per_person"`
	DailySales      []DailySales `json:"daily_sales"`
	CastRanking     []CastStat   `json:"cast_ranking"`
}

// DrinkRankEntry is one row of the daily drink-back ranking.
type DrinkRankEntry struct {
	CastName  string `json:"cast_name"`
	DrinkBack int    `json:"drink_back"`
	Count     int    `json:"count"`
}

// Daily builds the day's profit report: revenue, cost of goods, the four
// commission backs, staff wages and the resulting gross profit.
func (s *ReportService) Daily(storeID *uint, date string) (*DailyReport, error) {
	dayStart, dayEnd, err := dayWindow(date)
	if err != nil {
		return nil, err
	}

	sessions, orders, castsByName, err := s.loadWindow(storeID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	report := &DailyReport{
		Date:         date,
		SessionCount: len(sessions),
		OrderCount:   len(orders),
		Sessions:     make([]SessionSummary, 0, len(sessions)),
	}

	for _, sess := range sessions {
		report.TotalSales += sess.CurrentTotal
		report.TotalGuests += sess.Guests

		summary := SessionSummary{
			ID:             sess.ID,
			TableID:        sess.TableID,
			CastID:         sess.CastID,
			Guests:         sess.Guests,
			Total:          sess.CurrentTotal,
			HasCompanion:   sess.HasCompanion,
			CompanionName:  sess.CompanionName,
			NominationType: sess.NominationType,
			ShimeiCasts:    sess.ShimeiCasts,
			Status:         sess.Status,
		}
		if sess.Cast != nil {
			summary.CastName = sess.Cast.StageName
		}
		report.Sessions = append(report.Sessions, summary)
	}

	report.TotalCost = costOfGoods(orders)
	report.CastPayroll = computeBacks(sessions, orders, castsByName)

	report.StaffCost, err = s.staffCostBetween(storeID, date, date)
	if err != nil {
		return nil, err
	}

	var attendanceCount int64
	q := s.DB.Model(&models.Attendance{}).Where("date = ?", date)
	if storeID != nil {
		q = q.Where("store_id = ?", *storeID)
	}
	q.Count(&attendanceCount)
	report.AttendanceCount = int(attendanceCount)

	report.GrossProfit = report.TotalSales - report.TotalCost - report.CastPayroll.Total - report.StaffCost
	return report, nil
}

// Monthly builds the calendar-month report with per-day revenue buckets and
// the cast ranking ordered by attributed sales.
func (s *ReportService) Monthly(storeID *uint, year, month int) (*MonthlyReport, error) {
	monthStart, monthEnd := monthWindow(year, month)

	sessions, orders, castsByName, err := s.loadWindow(storeID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{
		Year:         year,
		Month:        month,
		Period:       fmt.Sprintf("%d年%d月", year, month),
		SessionCount: len(sessions),
	}

	for _, sess := range sessions {
		report.TotalSales += sess.CurrentTotal
		report.TotalGuests += sess.Guests
		if sess.HasCompanion {
			report.CompanionCount++
		}
		if sess.NominationType != "" {
			report.NominationCount++
		}
		report.ExtensionCount += sess.ExtensionCount
	}

	report.TotalCost = costOfGoods(orders)
	report.CastPayroll = computeBacks(sessions, orders, castsByName)

	lastDay := monthEnd.AddDate(0, 0, -1)
	report.StaffCost, err = s.staffCostBetween(storeID, monthStart.Format("2006-01-02"), lastDay.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	report.GrossProfit = report.TotalSales - report.TotalCost - report.CastPayroll.Total - report.StaffCost
	// Half-to-even rounding on the derived ratios.
	if report.TotalSales > 0 {
		rate := float64(report.GrossProfit) / float64(report.TotalSales) * 100
		report.GrossProfitRate = math.RoundToEven(rate*10) / 10
	}
	if report.SessionCount > 0 {
		report.AvgPerGroup = int(math.RoundToEven(float64(report.TotalSales) / float64(report.SessionCount)))
	}
	if report.TotalGuests > 0 {
		report.AvgPerPerson = int(math.RoundToEven(float64(report.TotalSales) / float64(report.TotalGuests)))
	}

	// Revenue bucketed by calendar day, every day present even when zero.
	salesByDay := make(map[string]int, lastDay.Day())
	for day := 1; day <= lastDay.Day(); day++ {
		salesByDay[fmt.Sprintf("%04d-%02d-%02d", year, month, day)] = 0
	}
	for _, sess := range sessions {
		key := sess.StartTime.Format("2006-01-02")
		if _, ok := salesByDay[key]; ok {
			salesByDay[key] += sess.CurrentTotal
		}
	}
	report.DailySales = make([]DailySales, 0, len(salesByDay))
	for day := 1; day <= lastDay.Day(); day++ {
		key := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		report.DailySales = append(report.DailySales, DailySales{Date: key, Sales: salesByDay[key]})
	}

	report.CastRanking = castRanking(sessions, orders)
	return report, nil
}

// DrinkRanking ranks casts by drink-flagged order value for one day.
func (s *ReportService) DrinkRanking(storeID *uint, date string) ([]DrinkRankEntry, error) {
	dayStart, dayEnd, err := dayWindow(date)
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	q := s.DB.Where("created_at >= ? AND created_at < ? AND is_drink_back = ?", dayStart, dayEnd, true)
	if storeID != nil {
		q = q.Where("store_id = ?", *storeID)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}

	totals := make(map[string]*DrinkRankEntry)
	var names []string
	for _, order := range orders {
		if order.CastName == "" {
			continue
		}
		entry, ok := totals[order.CastName]
		if !ok {
			entry = &DrinkRankEntry{CastName: order.CastName}
			totals[order.CastName] = entry
			names = append(names, order.CastName)
		}
		entry.DrinkBack += order.LineTotal()
		entry.Count += order.Quantity
	}

	ranking := make([]DrinkRankEntry, 0, len(names))
	for _, name := range names {
		ranking = append(ranking, *totals[name])
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].DrinkBack > ranking[j].DrinkBack
	})
	return ranking, nil
}

// loadWindow snapshots the window's sessions and orders plus the cast
// directory keyed by stage name. Stage names are assumed unique per store;
// on a collision the later row wins, as in the source system.
func (s *ReportService) loadWindow(storeID *uint, from, to time.Time) ([]models.Session, []models.Order, map[string]models.Cast, error) {
	var sessions []models.Session
	q := s.DB.Preload("Cast").Where("start_time >= ? AND start_time < ?", from, to)
	if storeID != nil {
		q = q.Where("store_id = ?", *storeID)
	}
	if err := q.Find(&sessions).Error; err != nil {
		return nil, nil, nil, err
	}

	var orders []models.Order
	q = s.DB.Preload("MenuItem").Where("created_at >= ? AND created_at < ?", from, to)
	if storeID != nil {
		q = q.Where("store_id = ?", *storeID)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, nil, nil, err
	}

	var casts []models.Cast
	q = s.DB
	if storeID != nil {
		q = q.Where("store_id = ?", *storeID)
	}
	if err := q.Find(&casts).Error; err != nil {
		return nil, nil, nil, err
	}
	castsByName := make(map[string]models.Cast, len(casts))
	for _, cast := range casts {
		castsByName[cast.StageName] = cast
	}

	return sessions, orders, castsByName, nil
}

func (s *ReportService) staffCostBetween(storeID *uint, fromDate, toDate string) (int, error) {
	var attendances []models.StaffAttendance
	q := s.DB.Where("date >= ? AND date <= ?", fromDate, toDate)
	if storeID != nil {
		q = q.Where("store_id = ?", *storeID)
	}
	if err := q.Find(&attendances).Error; err != nil {
		return 0, err
	}
	total := 0
	for _, att := range attendances {
		total += att.DailyWage
	}
	return total, nil
}

// costOfGoods sums catalog cost × quantity. Ad-hoc charges carry no catalog
// reference and contribute zero.
func costOfGoods(orders []models.Order) int {
	total := 0
	for _, order := range orders {
		if order.MenuItem != nil {
			total += order.MenuItem.Cost * order.Quantity
		}
	}
	return total
}

// computeBacks derives the four commission buckets for a window.
func computeBacks(sessions []models.Session, orders []models.Order, castsByName map[string]models.Cast) BackTotals {
	var backs BackTotals

	// Companion back: flat rate once per companion-flagged session.
	for _, sess := range sessions {
		if sess.HasCompanion && sess.CompanionName != "" {
			if cast, ok := castsByName[sess.CompanionName]; ok {
				backs.CompanionBack += cast.CompanionBack
			}
		}
	}

	// Nomination back: flat rate per nominated name per session. A cast
	// listed twice in one session is paid twice.
	for _, sess := range sessions {
		if sess.NominationType == "" || sess.ShimeiCasts == "" {
			continue
		}
		for _, name := range strings.Split(sess.ShimeiCasts, ",") {
			name = strings.TrimSpace(name)
			if cast, ok := castsByName[name]; ok {
				backs.NominationBack += cast.NominationBack
			}
		}
	}

	// Drink back: percentage of drink-flagged order value, truncated.
	for _, order := range orders {
		if order.IsDrinkBack && order.CastName != "" {
			if cast, ok := castsByName[order.CastName]; ok {
				rate := cast.DrinkBackRate
				if rate == 0 {
					rate = 10
				}
				backs.DrinkBack += order.LineTotal() * rate / 100
			}
		}
	}

	// Sales back: attributed session revenue per primary cast, then the
	// cast's percentage of her total, truncated.
	salesByCast := make(map[string]int)
	for _, sess := range sessions {
		if sess.Cast != nil {
			salesByCast[sess.Cast.StageName] += sess.CurrentTotal
		}
	}
	for name, sales := range salesByCast {
		if cast, ok := castsByName[name]; ok && cast.SalesBackRate != 0 {
			backs.SalesBack += sales * cast.SalesBackRate / 100
		}
	}

	backs.Total = backs.CompanionBack + backs.NominationBack + backs.DrinkBack + backs.SalesBack
	return backs
}

// castRanking aggregates per-cast monthly stats, descending by sales and
// stable on ties.
func castRanking(sessions []models.Session, orders []models.Order) []CastStat {
	stats := make(map[string]*CastStat)
	var names []string

	for _, sess := range sessions {
		if sess.Cast == nil {
			continue
		}
		name := sess.Cast.StageName
		stat, ok := stats[name]
		if !ok {
			stat = &CastStat{Name: name}
			stats[name] = stat
			names = append(names, name)
		}
		stat.Sales += sess.CurrentTotal
		if sess.NominationType != "" {
			stat.Nominations++
		}
		if sess.HasCompanion && sess.CompanionName == name {
			stat.Companions++
		}
	}

	for _, order := range orders {
		if order.IsDrinkBack && order.CastName != "" {
			if stat, ok := stats[order.CastName]; ok {
				stat.DrinkCount += order.Quantity
			}
		}
	}

	ranking := make([]CastStat, 0, len(names))
	for _, name := range names {
		ranking = append(ranking, *stats[name])
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Sales > ranking[j].Sales
	})
	return ranking
}

func dayWindow(date string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return start, start.AddDate(0, 0, 1), nil
}

func monthWindow(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}
