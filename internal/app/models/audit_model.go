package models

import (
	"strconv"
	"strings"
	"time"
)

// Well-known audit action tags. Actions carrying extra detail are written as
// "TAG: detail", e.g. "ACCESS_DENIED: /admin/users".
const (
	AuditActionLogin          = "LOGIN"
	AuditActionLogout         = "LOGOUT"
	AuditActionInsert         = "INSERT"
	AuditActionUpdate         = "UPDATE"
	AuditActionDelete         = "DELETE"
	AuditActionChangePassword = "CHANGE_PASSWORD"
	AuditActionAccessDenied   = "ACCESS_DENIED"
)

// Audit target categories.
const (
	AuditTargetCustomer     = "CUSTOMER"
	AuditTargetCar          = "CAR"
	AuditTargetOrder        = "ORDERS"
	AuditTargetAdminAction  = "ADMIN_ACTION"
	AuditTargetAccessDenied = "ACCESS_DENIED"
)

// AuditLog is one append-only trail entry. Rows are only ever inserted; the
// sequence-assigned log id is unique and strictly increasing in insertion
// order.
type AuditLog struct {
	LogID       int64     `json:"log_id" gorm:"column:log_id;primaryKey;autoIncrement"`
	AccountID   *int64    `json:"account_id,omitempty" gorm:"index"`
	Action      string    `json:"action" gorm:"type:varchar(100);not null"`
	TargetTable *string   `json:"target_table,omitempty" gorm:"type:varchar(50)"`
	LoggedAt    time.Time `json:"logged_at" gorm:"not null;index"`
	SourceIP    string    `json:"source_ip" gorm:"type:varchar(45)"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}

// AuditLogEntry is a trail row joined with the acting account, as served to
// dashboards and exports. Account fields are nil for anonymous or system
// events and for deleted accounts.
type AuditLogEntry struct {
	LogID       int64     `json:"log_id"`
	AccountID   *int64    `json:"account_id,omitempty"`
	FullName    *string   `json:"full_name,omitempty"`
	Email       *string   `json:"email,omitempty"`
	RoleName    *string   `json:"role_name,omitempty"`
	Action      string    `json:"action"`
	TargetTable *string   `json:"target_table,omitempty"`
	LoggedAt    time.Time `json:"logged_at"`
	SourceIP    *string   `json:"source_ip,omitempty"`
}

// AuditFilter carries the optional trail search predicates.
type AuditFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Action   string
}

// SecurityStats aggregates the security dashboard counters.
type SecurityStats struct {
	TotalLogs         int `json:"total_logs"`
	FailedLogins30d   int `json:"failed_logins_30d"`
	ActiveUsers24h    int `json:"active_users_24h"`
	AdminActionsToday int `json:"admin_actions_today"`
}

// auditCSVHeader is the fixed export header; the column set is part of the
// export contract.
const auditCSVHeader = "ID,User ID,User Name,Email,Action,Table,Time,IP"

const auditCSVTimeLayout = "2006-01-02 15:04:05"

// AuditCSV renders trail entries as CSV text, one row per event under the
// fixed header. Absent optional fields are rendered as the literal "N/A".
// Zero entries yield exactly the header row.
func AuditCSV(entries []AuditLogEntry) string {
	var sb strings.Builder
	sb.WriteString(auditCSVHeader)
	sb.WriteString("\n")

	for _, e := range entries {
		fields := []string{
			strconv.FormatInt(e.LogID, 10),
			naInt64(e.AccountID),
			naString(e.FullName),
			naString(e.Email),
			csvEscape(e.Action),
			orEmpty(e.TargetTable),
			e.LoggedAt.Format(auditCSVTimeLayout),
			naString(e.SourceIP),
		}
		sb.WriteString(strings.Join(fields, ","))
		sb.WriteString("\n")
	}

	return sb.String()
}

func naInt64(v *int64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatInt(*v, 10)
}

func naString(v *string) string {
	if v == nil || *v == "" {
		return "N/A"
	}
	return csvEscape(*v)
}

func orEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return csvEscape(*v)
}

// csvEscape quotes fields containing separators or quotes.
func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
