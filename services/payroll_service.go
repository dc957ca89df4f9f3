package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/models"
)

// PayrollService builds per-cast monthly pay statements: base salary from
// time cards plus the four commission backs, evaluated per cast over one
// calendar month. Independent of the window-level report aggregation.
type PayrollService struct {
	DB *gorm.DB
}

func NewPayrollService(db *gorm.DB) *PayrollService {
	return &PayrollService{DB: db}
}

type PayrollStatement struct {
	CastID         uint    `json:"cast_id"`
	CastName       string  `json:"cast_name"`
	Rank           string  `json:"rank"`
	SalaryType     string  `json:"salary_type"`
	Period         string  `json:"period"`
	WorkDays       int     `json:"work_days"`
	TotalHours     float64 `json:"total_hours"`
	HourlyRate     int     `json:"hourly_rate"`
	MonthlySalary  int     `json:"monthly_salary"`
	BaseSalary     int     `json:"base_salary"`
	CompanionCount int     `json:"companion_count"`
	CompanionBack  int     `json:"companion_back"`
	NominationCount int    `json:"nomination_count"`
	NominationBack int     `json:"nomination_back"`
	DrinkCount     int     `json:"drink_count"`
	DrinkSales     int     `json:"drink_sales"`
	DrinkBack      int     `json:"drink_back"`
	TotalSales     int     `json:"total_sales"`
	SalesBack      int     `json:"sales_back"`
	TotalPayroll   int     `json:"total_payroll"`
}

// MonthlyStatements computes statements for one cast, or for every cast in
// scope when castID is nil.
func (s *PayrollService) MonthlyStatements(storeID *uint, year, month int, castID *uint) ([]PayrollStatement, error) {
	monthStart, monthEnd := monthWindow(year, month)
	fromDate := monthStart.Format("2006-01-02")
	toDate := monthEnd.AddDate(0, 0, -1).Format("2006-01-02")

	var casts []models.Cast
	q := s.DB
	if castID != nil {
		q = q.Where("id = ?", *castID)
	}
	if storeID != nil {
		q = q.Where("store_id = ?", *storeID)
	}
	if err := q.Find(&casts).Error; err != nil {
		return nil, err
	}

	statements := make([]PayrollStatement, 0, len(casts))
	for _, cast := range casts {
		stmt := PayrollStatement{
			CastID:        cast.ID,
			CastName:      cast.StageName,
			Rank:          cast.Rank,
			SalaryType:    cast.SalaryType,
			Period:        fmt.Sprintf("%d年%d月", year, month),
			HourlyRate:    cast.HourlyRate,
			MonthlySalary: cast.MonthlySalary,
		}
		if stmt.SalaryType == "" {
			stmt.SalaryType = "hourly"
		}

		var attendances []models.Attendance
		if err := s.DB.Where("cast_id = ? AND date >= ? AND date <= ?", cast.ID, fromDate, toDate).
			Find(&attendances).Error; err != nil {
			return nil, err
		}
		stmt.WorkDays = len(attendances)
		rawHours := 0.0
		for _, att := range attendances {
			if att.ClockIn != "" && att.ClockOut != "" {
				if hours, ok := WorkedHours(att.ClockIn, att.ClockOut); ok {
					rawHours += hours
				}
			}
		}
		// Pay is computed from the exact hours; only the displayed total is
		// rounded.
		if cast.SalaryType == "monthly" {
			stmt.BaseSalary = cast.MonthlySalary
		} else {
			stmt.BaseSalary = int(float64(cast.HourlyRate) * rawHours)
		}
		stmt.TotalHours = math.RoundToEven(rawHours*10) / 10

		var sessions []models.Session
		if err := s.DB.Where("cast_id = ? AND start_time >= ? AND start_time < ?", cast.ID, monthStart, monthEnd).
			Find(&sessions).Error; err != nil {
			return nil, err
		}
		for _, sess := range sessions {
			if sess.HasCompanion && sess.CompanionName == cast.StageName {
				stmt.CompanionCount++
				stmt.CompanionBack += cast.CompanionBack
			}
			// A nomination-flagged session credits the assigned cast even
			// when the nominated list names others; this mirrors how the
			// floor records in-house nominations against the primary cast.
			if sess.NominationType != "" {
				stmt.NominationCount++
				stmt.NominationBack += cast.NominationBack
			}
			stmt.TotalSales += sess.CurrentTotal
		}

		var orders []models.Order
		if err := s.DB.Where("cast_name = ? AND is_drink_back = ? AND created_at >= ? AND created_at < ?",
			cast.StageName, true, monthStart, monthEnd).
			Find(&orders).Error; err != nil {
			return nil, err
		}
		for _, order := range orders {
			stmt.DrinkSales += order.LineTotal()
			stmt.DrinkCount += order.Quantity
		}
		drinkRate := cast.DrinkBackRate
		if drinkRate == 0 {
			drinkRate = 10
		}
		stmt.DrinkBack = stmt.DrinkSales * drinkRate / 100
		stmt.SalesBack = stmt.TotalSales * cast.SalesBackRate / 100

		stmt.TotalPayroll = stmt.BaseSalary + stmt.CompanionBack + stmt.NominationBack + stmt.DrinkBack + stmt.SalesBack
		statements = append(statements, stmt)
	}

	return statements, nil
}

// DailyWage derives one day's staff pay from the compensation model.
// Monthly salaries are prorated over 25 working days.
func DailyWage(salaryType string, amount int, hours float64) int {
	switch salaryType {
	case "hourly":
		return int(float64(amount) * hours)
	case "daily":
		return amount
	case "monthly":
		return amount / 25
	}
	return 0
}

// WorkedHours computes the span between two "HH:MM" clock strings in hours.
// A clock-out earlier than clock-in means the shift crossed midnight and
// gets 24 hours added before differencing.
func WorkedHours(clockIn, clockOut string) (float64, bool) {
	in, okIn := clockMinutes(clockIn)
	out, okOut := clockMinutes(clockOut)
	if !okIn || !okOut {
		return 0, false
	}
	if out < in {
		out += 24 * 60
	}
	return float64(out-in) / 60, true
}

func clockMinutes(clock string) (int, bool) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return hours*60 + minutes, true
}
