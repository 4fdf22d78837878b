package services

import (
	"github.com/driveline/driveline-core/internal/app/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StatsService computes dashboard aggregates. Availability of partial data
// wins over strict error surfacing here: every counter degrades to zero
// with a diagnostic log instead of failing the dashboard.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

func (s *StatsService) Dashboard() *models.DashboardStats {
	stats := &models.DashboardStats{TotalRevenue: decimal.Zero}

	var customers int64
	if err := s.db.Model(&models.Customer{}).Count(&customers).Error; err == nil {
		stats.TotalCustomers = int(customers)
	} else {
		logrus.WithError(err).Warn("customer count degraded to zero")
	}

	var cars int64
	err := s.db.Model(&models.Car{}).
		Where("status != ?", models.CarStatusDeleted).
		Count(&cars).Error
	if err == nil {
		stats.TotalCars = int(cars)
	} else {
		logrus.WithError(err).Warn("car count degraded to zero")
	}

	var orders int64
	if err := s.db.Model(&models.Order{}).Count(&orders).Error; err == nil {
		stats.TotalOrders = int(orders)
	} else {
		logrus.WithError(err).Warn("order count degraded to zero")
	}

	var revenue decimal.NullDecimal
	err = s.db.Model(&models.Order{}).
		Where("status != ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error
	if err == nil && revenue.Valid {
		stats.TotalRevenue = revenue.Decimal
	} else if err != nil {
		logrus.WithError(err).Warn("revenue stat degraded to zero")
	}

	return stats
}
