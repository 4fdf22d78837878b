package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }
func i64p(v int64) *int64   { return &v }

func TestAuditCSV_EmptyWindow(t *testing.T) {
	csv := AuditCSV(nil)
	assert.Equal(t, "ID,User ID,User Name,Email,Action,Table,Time,IP\n", csv)
}

func TestAuditCSV_Rows(t *testing.T) {
	at := time.Date(2024, 5, 2, 14, 30, 5, 0, time.UTC)

	entries := []AuditLogEntry{
		{
			LogID:       42,
			AccountID:   i64p(7),
			FullName:    strp("Alice Nguyen"),
			Email:       strp("alice@example.com"),
			Action:      "LOGIN",
			TargetTable: strp("CUSTOMER"),
			LoggedAt:    at,
			SourceIP:    strp("10.0.0.5"),
		},
		{
			// Anonymous event: optional fields become the N/A placeholder.
			LogID:    43,
			Action:   "ACCESS_DENIED: /admin/users",
			LoggedAt: at,
		},
	}

	csv := AuditCSV(entries)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "ID,User ID,User Name,Email,Action,Table,Time,IP", lines[0])
	assert.Equal(t, "42,7,Alice Nguyen,alice@example.com,LOGIN,CUSTOMER,2024-05-02 14:30:05,10.0.0.5", lines[1])
	assert.Equal(t, "43,N/A,N/A,N/A,ACCESS_DENIED: /admin/users,,2024-05-02 14:30:05,N/A", lines[2])
}

func TestAuditCSV_EscapesSeparators(t *testing.T) {
	entries := []AuditLogEntry{{
		LogID:    1,
		Action:   `UPDATE_PRODUCT: #3 - "Luxe, GT"`,
		LoggedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}}

	csv := AuditCSV(entries)
	assert.Contains(t, csv, `"UPDATE_PRODUCT: #3 - ""Luxe, GT"""`)
}
