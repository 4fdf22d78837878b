package services

import (
	"sort"
	"time"

	"github.com/driveline/driveline-core/internal/app/models"
	"github.com/driveline/driveline-core/internal/app/pkg"
	"github.com/driveline/driveline-core/pkg/querybuilder"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	accountLogLimit     = 100
	filteredSearchLimit = 200
	securityEventLimit  = 50
	securityWindowDays  = 30
	exportWindowDays    = 30
)

// AuditService owns the append-only trail: a best-effort writer and a set of
// read-only, lock-free query paths for dashboards and exports.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record appends one trail entry. The write is best-effort by contract: a
// failed audit insert is diagnostic-logged and never propagated, so that
// audit completeness can never fail a user-facing action that already
// succeeded. Callers therefore get no error to handle.
func (s *AuditService) Record(accountID *int64, action, targetTable, sourceIP string) {
	entry := &models.AuditLog{
		AccountID: accountID,
		Action:    action,
		LoggedAt:  time.Now(),
		SourceIP:  sourceIP,
	}
	if targetTable != "" {
		entry.TargetTable = &targetTable
	}

	if err := s.db.Create(entry).Error; err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"action": action,
			"target": targetTable,
		}).Error("audit write failed")
	}
}

// entrySelect joins trail rows with the acting account for display. Deleted
// accounts leave the joined columns NULL, which readers render as absent.
const entrySelect = `SELECT al.log_id, al.account_id, c.full_name, c.email, ar.role_name,
	al.action, al.target_table, al.logged_at, al.source_ip
	FROM audit_log al
	LEFT JOIN customers c ON al.account_id = c.id
	LEFT JOIN account_roles ar ON al.account_id = ar.account_id`

// displayOrder sorts by stored timestamp, tie-broken by the sequence id,
// because insertion order under concurrent writers is not wall-clock order.
const displayOrder = "al.logged_at DESC, al.log_id DESC"

// emptyIfNil keeps list reads serializing as [] rather than null when a
// query legitimately returns no rows.
func emptyIfNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

func (s *AuditService) queryEntries(b *querybuilder.Builder) []models.AuditLogEntry {
	sql, args := b.Build()

	var entries []models.AuditLogEntry
	if err := s.db.Raw(sql, args...).Scan(&entries).Error; err != nil {
		logrus.WithError(err).Warn("audit query degraded to empty result")
		return []models.AuditLogEntry{}
	}
	if entries == nil {
		entries = []models.AuditLogEntry{}
	}
	return entries
}

// ListLogs returns one window of the trail, newest first. Page numbers below
// 1 are treated as 1; infrastructure failures degrade to an empty page.
func (s *AuditService) ListLogs(page, pageSize int) *models.Pagination[[]models.AuditLogEntry] {
	if pageSize <= 0 {
		pageSize = 50
	}
	if page < 1 {
		page = 1
	}

	var total int64
	if err := s.db.Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		logrus.WithError(err).Warn("audit count degraded to zero")
		total = 0
	}

	entries := s.queryEntries(querybuilder.New(entrySelect).
		OrderBy(displayOrder).
		Page(page, pageSize))

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &models.Pagination[[]models.AuditLogEntry]{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: int(total),
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
		Items:      entries,
	}
}

// ListForAccount returns up to 100 most recent events for one account,
// newest first. Route gates guarantee an account only reaches its own id.
func (s *AuditService) ListForAccount(accountID int64) []models.AuditLogEntry {
	return s.queryEntries(querybuilder.New(entrySelect).
		Where("al.account_id = ?", accountID).
		OrderBy(displayOrder).
		Limit(accountLogLimit))
}

// FilteredSearch returns up to 200 events matching all supplied predicates,
// newest first. The to-date bound is inclusive of the entire day.
func (s *AuditService) FilteredSearch(filter models.AuditFilter) []models.AuditLogEntry {
	var to *time.Time
	if filter.ToDate != nil {
		t := pkg.EndOfDay(*filter.ToDate)
		to = &t
	}

	return s.queryEntries(querybuilder.New(entrySelect).
		AtLeast("al.logged_at", filter.FromDate).
		AtMost("al.logged_at", to).
		EqualText("al.action", filter.Action).
		OrderBy(displayOrder).
		Limit(filteredSearchLimit))
}

// DistinctActions returns the sorted set of action tags ever recorded, used
// to populate filter choices.
func (s *AuditService) DistinctActions() []string {
	var actions []string
	err := s.db.Model(&models.AuditLog{}).
		Distinct("action").
		Order("action").
		Pluck("action", &actions).Error
	if err != nil {
		logrus.WithError(err).Warn("distinct actions degraded to empty result")
		return []string{}
	}
	sort.Strings(actions)
	return emptyIfNil(actions)
}

// SecurityEvents returns up to 50 denial/failure events from the last 30
// days, newest first.
func (s *AuditService) SecurityEvents() []models.AuditLogEntry {
	return s.queryEntries(querybuilder.New(entrySelect).
		Where("(al.action LIKE 'ACCESS_DENIED%' OR al.action LIKE '%FAILED%' OR al.action LIKE '%DENIED%')").
		Where("al.logged_at >= ?", pkg.DaysAgo(securityWindowDays)).
		OrderBy(displayOrder).
		Limit(securityEventLimit))
}

// LoginEvents returns up to 100 recent authentication events.
func (s *AuditService) LoginEvents() []models.AuditLogEntry {
	return s.queryEntries(querybuilder.New(entrySelect).
		Where("al.action IN (?, ?)", models.AuditActionLogin, models.AuditActionLogout).
		OrderBy(displayOrder).
		Limit(accountLogLimit))
}

// AdminActions returns up to 100 recent privileged actions.
func (s *AuditService) AdminActions() []models.AuditLogEntry {
	return s.queryEntries(querybuilder.New(entrySelect).
		Where("al.target_table = ?", models.AuditTargetAdminAction).
		OrderBy(displayOrder).
		Limit(accountLogLimit))
}

// ExportCSV renders the last 30 days of the trail as CSV text. A window
// with zero events yields exactly the header row.
func (s *AuditService) ExportCSV() string {
	entries := s.queryEntries(querybuilder.New(entrySelect).
		Where("al.logged_at >= ?", pkg.DaysAgo(exportWindowDays)).
		OrderBy(displayOrder))

	return models.AuditCSV(entries)
}

// SecurityStats aggregates the security dashboard counters, each degrading
// to zero when the store is unreachable.
func (s *AuditService) SecurityStats() *models.SecurityStats {
	stats := &models.SecurityStats{}

	var total int64
	if err := s.db.Model(&models.AuditLog{}).Count(&total).Error; err == nil {
		stats.TotalLogs = int(total)
	} else {
		logrus.WithError(err).Warn("total logs stat degraded to zero")
	}

	var failed int64
	err := s.db.Model(&models.AuditLog{}).
		Where("action LIKE 'ACCESS_DENIED%' AND logged_at >= ?", pkg.DaysAgo(securityWindowDays)).
		Count(&failed).Error
	if err == nil {
		stats.FailedLogins30d = int(failed)
	} else {
		logrus.WithError(err).Warn("failed logins stat degraded to zero")
	}

	var active int64
	err = s.db.Model(&models.AuditLog{}).
		Where("action IN (?, ?) AND logged_at >= ?",
			models.AuditActionLogin, models.AuditActionLogout, pkg.DaysAgo(1)).
		Distinct("account_id").
		Count(&active).Error
	if err == nil {
		stats.ActiveUsers24h = int(active)
	} else {
		logrus.WithError(err).Warn("active users stat degraded to zero")
	}

	var adminToday int64
	err = s.db.Model(&models.AuditLog{}).
		Where("target_table = ? AND logged_at >= ?",
			models.AuditTargetAdminAction, pkg.StartOfDay(time.Now())).
		Count(&adminToday).Error
	if err == nil {
		stats.AdminActionsToday = int(adminToday)
	} else {
		logrus.WithError(err).Warn("admin actions stat degraded to zero")
	}

	return stats
}
