package services

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/driveline/driveline-core/internal/app/errors"
	"github.com/driveline/driveline-core/internal/app/models"
	"github.com/driveline/driveline-core/internal/infrastructures"
	"github.com/driveline/driveline-core/pkg/rbac"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DigestFunc is the opaque one-way password digest collaborator. The core
// only forwards its output; it makes no cryptographic decisions of its own.
type DigestFunc func(string) string

// DefaultDigest matches the digest the registration/login procedures compare
// against (uppercase hex SHA-256).
func DefaultDigest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// AuthService drives the authentication flows. Registration, login and
// logout are implemented by database procedures returning a numeric result
// code and message; this service only marshals parameters and interprets
// results.
type AuthService struct {
	db        *gorm.DB
	sessions  *SessionService
	audit     *AuditService
	validator *infrastructures.Validator
	digest    DigestFunc
}

func NewAuthService(db *gorm.DB, sessions *SessionService, audit *AuditService, validator *infrastructures.Validator) *AuthService {
	return &AuthService{
		db:        db,
		sessions:  sessions,
		audit:     audit,
		validator: validator,
		digest:    DefaultDigest,
	}
}

type registerProcRow struct {
	Result    int
	Message   string
	AccountID int64
}

// Register creates an account through sp_register_customer and returns the
// new account id.
func (s *AuthService) Register(req *models.RegisterRequest) (int64, error) {
	if err := s.validator.Validate(req); err != nil {
		return 0, err
	}

	var row registerProcRow
	err := s.db.Raw(
		"SELECT * FROM sp_register_customer(?, ?, ?, ?, ?)",
		req.FullName, req.Email, req.Phone, s.digest(req.Password), req.Address,
	).Scan(&row).Error
	if err != nil {
		return 0, errors.NewInternalServerError(err, "Failed to register account")
	}
	if row.Result != 1 {
		return 0, errors.NewOperationFailedError(row.Message)
	}

	return row.AccountID, nil
}

type loginProcRow struct {
	Result    int
	Message   string
	AccountID int64
	FullName  string
	RoleName  string
}

// Login verifies credentials through sp_login_customer (which records the
// LOGIN or failed-login audit row itself) and opens a session for the
// resolved principal.
func (s *AuthService) Login(req *models.LoginRequest, sourceIP string) (string, *rbac.Principal, error) {
	if err := s.validator.Validate(req); err != nil {
		return "", nil, err
	}

	var row loginProcRow
	err := s.db.Raw(
		"SELECT * FROM sp_login_customer(?, ?, ?)",
		req.Email, s.digest(req.Password), sourceIP,
	).Scan(&row).Error
	if err != nil {
		return "", nil, errors.NewInternalServerError(err, "Failed to sign in")
	}
	if row.Result != 1 {
		return "", nil, errors.NewUnauthorizedError(row.Message)
	}

	role := row.RoleName
	if role == "" {
		role = string(rbac.DefaultRole)
	}
	principal := &rbac.Principal{
		AccountID:   row.AccountID,
		DisplayName: row.FullName,
		Role:        role,
	}

	token, err := s.sessions.Create(principal)
	if err != nil {
		return "", nil, err
	}

	return token, principal, nil
}

// Logout closes the session and reports the event to sp_logout_customer,
// which writes the LOGOUT audit row. A procedure failure is logged but does
// not keep the session alive.
func (s *AuthService) Logout(p *rbac.Principal, token, sourceIP string) error {
	if !p.IsAnonymous() {
		err := s.db.Exec("SELECT sp_logout_customer(?, ?)", p.AccountID, sourceIP).Error
		if err != nil {
			logrus.WithError(err).Warn("logout procedure failed")
		}
	}
	return s.sessions.Destroy(token)
}

// ChangePassword verifies the old digest, stores the new one and records a
// CHANGE_PASSWORD audit entry before reporting success.
func (s *AuthService) ChangePassword(p *rbac.Principal, req *models.ChangePasswordRequest, sourceIP string) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	var count int64
	err := s.db.Model(&models.Customer{}).
		Where("id = ? AND password_digest = ?", p.AccountID, s.digest(req.OldPassword)).
		Count(&count).Error
	if err != nil {
		return errors.NewInternalServerError(err, "Failed to change password")
	}
	if count == 0 {
		return errors.NewBadRequestError("Old password is incorrect")
	}

	result := s.db.Model(&models.Customer{}).
		Where("id = ?", p.AccountID).
		Update("password_digest", s.digest(req.NewPassword))
	if result.Error != nil {
		return errors.NewInternalServerError(result.Error, "Failed to change password")
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("Account not found")
	}

	accountID := p.AccountID
	s.audit.Record(&accountID, models.AuditActionChangePassword, models.AuditTargetCustomer, sourceIP)

	return nil
}
