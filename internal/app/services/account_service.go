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

// AccountService covers self-service profile access and the back-office
// user management operations.
type AccountService struct {
	db        *gorm.DB
	audit     *AuditService
	validator *infrastructures.Validator
}

func NewAccountService(db *gorm.DB, audit *AuditService, validator *infrastructures.Validator) *AccountService {
	return &AccountService{db: db, audit: audit, validator: validator}
}

// Get returns one account row.
func (s *AccountService) Get(accountID int64) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.Where("id = ?", accountID).First(&customer).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Account not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get account")
	}
	return &customer, nil
}

// UpdateProfile updates the caller's own contact details.
func (s *AccountService) UpdateProfile(p *rbac.Principal, req *models.UpdateProfileRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	result := s.db.Model(&models.Customer{}).Where("id = ?", p.AccountID).Updates(map[string]interface{}{
		"full_name": req.FullName,
		"phone":     req.Phone,
		"address":   req.Address,
	})
	if result.Error != nil {
		return errors.NewInternalServerError(result.Error, "Failed to update profile")
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("Account not found")
	}

	return nil
}

const userOverviewSelect = `SELECT c.id AS account_id, c.full_name, c.email, c.phone, c.address,
	c.registered_at, COALESCE(ar.role_name, 'CUSTOMER') AS role_name,
	(SELECT COUNT(*) FROM orders WHERE account_id = c.id) AS total_orders,
	(SELECT COUNT(*) FROM audit_log WHERE account_id = c.id) AS total_activities
	FROM customers c
	LEFT JOIN account_roles ar ON c.id = ar.account_id`

// ListUsers returns every account with its role and aggregate counts,
// newest registrations first. Degrades to an empty list on failure.
func (s *AccountService) ListUsers() []models.UserOverview {
	var users []models.UserOverview
	err := s.db.Raw(userOverviewSelect + " ORDER BY c.id DESC").Scan(&users).Error
	if err != nil {
		logrus.WithError(err).Warn("user list degraded to empty result")
		return []models.UserOverview{}
	}
	if users == nil {
		users = []models.UserOverview{}
	}
	return users
}

// UserDetail returns the overview of a single account.
func (s *AccountService) UserDetail(accountID int64) (*models.UserOverview, error) {
	var user models.UserOverview
	err := s.db.Raw(userOverviewSelect+" WHERE c.id = ?", accountID).Scan(&user).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get user")
	}
	if user.AccountID == 0 {
		return nil, errors.NewNotFoundError("User not found")
	}
	return &user, nil
}

// ChangeRole replaces an account's role assignment. The role tag must be
// part of the closed enumeration.
func (s *AccountService) ChangeRole(p *rbac.Principal, sourceIP string, accountID int64, req *models.ChangeRoleRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	role, ok := rbac.ParseRole(req.RoleName)
	if !ok {
		return errors.NewBadRequestError(fmt.Sprintf("Unknown role: %s", req.RoleName))
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Customer{}).Where("id = ?", accountID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errors.NewNotFoundError("User not found")
		}

		result := tx.Model(&models.AccountRole{}).
			Where("account_id = ?", accountID).
			Update("role_name", string(role))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return tx.Create(&models.AccountRole{AccountID: accountID, RoleName: string(role)}).Error
		}
		return nil
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return appErr
		}
		return errors.NewInternalServerError(err, "Failed to change role")
	}

	s.recordAdmin(p, sourceIP, fmt.Sprintf("CHANGE_ROLE: User #%d to %s", accountID, role))
	return nil
}

// DeleteUser removes an account and its role assignment.
func (s *AccountService) DeleteUser(p *rbac.Principal, sourceIP string, accountID int64) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", accountID).Delete(&models.AccountRole{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", accountID).Delete(&models.Customer{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.NewNotFoundError("User not found")
		}
		return nil
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return appErr
		}
		return errors.NewInternalServerError(err, "Failed to delete user")
	}

	s.recordAdmin(p, sourceIP, fmt.Sprintf("DELETE_USER: User #%d", accountID))
	return nil
}

func (s *AccountService) recordAdmin(p *rbac.Principal, sourceIP, action string) {
	var accountID *int64
	if !p.IsAnonymous() {
		id := p.AccountID
		accountID = &id
	}
	s.audit.Record(accountID, action, models.AuditTargetAdminAction, sourceIP)
}
