package services

import (
	"fmt"

	"github.com/driveline/driveline-core/internal/app/errors"
	"github.com/driveline/driveline-core/internal/app/models"
	"github.com/driveline/driveline-core/internal/infrastructures"
	"github.com/driveline/driveline-core/pkg/rbac"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OrderService drives the order lifecycle. Placement is delegated entirely
// to the transactional database procedure, which owns availability checks,
// price locking and total computation; this service marshals parameters,
// interprets results and records the outcome.
type OrderService struct {
	db        *gorm.DB
	audit     *AuditService
	validator *infrastructures.Validator
}

func NewOrderService(db *gorm.DB, audit *AuditService, validator *infrastructures.Validator) *OrderService {
	return &OrderService{db: db, audit: audit, validator: validator}
}

type orderProcRow struct {
	Result  int
	Message string
	OrderID int64
}

// Create places an order through sp_create_order. A non-success result code
// surfaces as a failed-but-expected outcome with the procedure's message;
// the creation audit entry fires only on success.
func (s *OrderService) Create(p *rbac.Principal, sourceIP string, req *models.CreateOrderRequest) (*models.CreateOrderResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var row orderProcRow
	err := s.db.Raw(
		"SELECT * FROM sp_create_order(?, ?, ?)",
		p.AccountID, req.CarID, req.Quantity,
	).Scan(&row).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to place order")
	}
	if row.Result != 1 {
		return nil, errors.NewOperationFailedError(row.Message)
	}

	accountID := p.AccountID
	s.audit.Record(&accountID,
		fmt.Sprintf("CREATE_ORDER: #%d", row.OrderID),
		models.AuditTargetOrder, sourceIP)

	return &models.CreateOrderResult{
		Success: true,
		Message: row.Message,
		OrderID: row.OrderID,
	}, nil
}

type statusProcRow struct {
	Result  int
	Message string
}

// UpdateStatus sets an order's status through sp_update_order_status. Any
// caller-supplied status string is accepted and persisted; unknown statuses
// and transitions outside the reference state machine are flagged in the
// diagnostic log rather than rejected, since route layers only offer valid
// transitions.
func (s *OrderService) UpdateStatus(p *rbac.Principal, sourceIP string, orderID int64, newStatus string) error {
	s.flagSuspiciousTransition(orderID, newStatus)

	var row statusProcRow
	err := s.db.Raw(
		"SELECT * FROM sp_update_order_status(?, ?)",
		orderID, newStatus,
	).Scan(&row).Error
	if err != nil {
		return errors.NewInternalServerError(err, "Failed to update order status")
	}
	if row.Result != 1 {
		return errors.NewOperationFailedError(row.Message)
	}

	accountID := p.AccountID
	s.audit.Record(&accountID,
		fmt.Sprintf("UPDATE_ORDER_STATUS: Order #%d to %s", orderID, newStatus),
		models.AuditTargetOrder, sourceIP)

	return nil
}

func (s *OrderService) flagSuspiciousTransition(orderID int64, newStatus string) {
	if !models.KnownOrderStatus(newStatus) {
		logrus.WithFields(logrus.Fields{
			"order_id": orderID,
			"status":   newStatus,
		}).Warn("order status outside the known enumeration")
		return
	}

	var current string
	err := s.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Pluck("status", &current).Error
	if err != nil || current == "" {
		return
	}

	if !models.ValidTransition(models.OrderStatus(current), models.OrderStatus(newStatus)) {
		logrus.WithFields(logrus.Fields{
			"order_id": orderID,
			"from":     current,
			"to":       newStatus,
		}).Warn("order status transition outside the reference state machine")
	}
}

// Cancel moves an order owned by the caller (or any order, for staff) to
// CANCELLED.
func (s *OrderService) Cancel(p *rbac.Principal, sourceIP string, orderID int64) error {
	if _, err := s.Detail(p, orderID); err != nil {
		return err
	}
	return s.UpdateStatus(p, sourceIP, orderID, string(models.OrderStatusCancelled))
}

// MyOrders lists the caller's orders through sp_get_my_orders, newest
// first. Infrastructure failures degrade to an empty list.
func (s *OrderService) MyOrders(accountID int64) []models.OrderSummary {
	var orders []models.OrderSummary
	err := s.db.Raw("SELECT * FROM sp_get_my_orders(?)", accountID).Scan(&orders).Error
	if err != nil {
		logrus.WithError(err).Warn("my orders degraded to empty result")
		return []models.OrderSummary{}
	}
	if orders == nil {
		orders = []models.OrderSummary{}
	}
	return orders
}

// Detail returns one order through sp_get_order_detail. Customers may only
// see their own orders; ADMIN and MANAGER see all.
func (s *OrderService) Detail(p *rbac.Principal, orderID int64) (*models.OrderDetail, error) {
	var detail models.OrderDetail
	err := s.db.Raw("SELECT * FROM sp_get_order_detail(?)", orderID).Scan(&detail).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get order")
	}
	if detail.OrderID == 0 {
		return nil, errors.NewNotFoundError("Order not found")
	}

	if detail.AccountID != p.AccountID &&
		!p.HasRole(rbac.RoleAdmin) && !p.HasRole(rbac.RoleManager) {
		return nil, errors.NewForbiddenError("You do not have access to this order")
	}

	return &detail, nil
}

// AllOrders lists every order with buyer and line detail for the
// back-office, newest first. Degrades to an empty list on failure.
func (s *OrderService) AllOrders() []models.AdminOrderRow {
	const sql = `SELECT o.id AS order_id, o.account_id, c.full_name, c.email, c.phone,
		o.placed_at, o.total, o.status,
		ol.car_id, car.name AS car_name, car.brand, ol.quantity, ol.unit_price
		FROM orders o
		JOIN customers c ON o.account_id = c.id
		JOIN order_lines ol ON o.id = ol.order_id
		JOIN cars car ON ol.car_id = car.id
		ORDER BY o.placed_at DESC`

	var rows []models.AdminOrderRow
	if err := s.db.Raw(sql).Scan(&rows).Error; err != nil {
		logrus.WithError(err).Warn("admin order list degraded to empty result")
		return []models.AdminOrderRow{}
	}
	if rows == nil {
		rows = []models.AdminOrderRow{}
	}
	return rows
}
