package querybuilder

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "TOYOTACAMRY", Normalize("  toyota   camry "))
	assert.Equal(t, "TOYOTACAMRY", Normalize("ToyotaCamry"))
	assert.Equal(t, "TOYOTACAMRY", Normalize("toyota\tcamry"))
	assert.Equal(t, "", Normalize("   "))

	// Invariant under whitespace insertion and case changes on both sides.
	assert.Equal(t, Normalize("Toyota Camry"), Normalize("  toYOTA   caMRY "))
}

func TestWindow(t *testing.T) {
	limit, offset := Window(1, 12)
	assert.Equal(t, 12, limit)
	assert.Equal(t, 0, offset)

	limit, offset = Window(3, 50)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 100, offset)

	// Pages below 1 are treated as page 1.
	limit, offset = Window(0, 10)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)

	limit, offset = Window(-5, 10)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 10, limit)
}

func TestBuilder_BlankAndNilFiltersSkipped(t *testing.T) {
	sql, args := New("SELECT * FROM cars").
		ContainsText("name", "   ").
		EqualText("brand", "").
		AtLeast("price", nil).
		AtMost("price", (*decimal.Decimal)(nil)).
		Equal("model_year", (*int16)(nil)).
		Build()

	assert.Equal(t, "SELECT * FROM cars", sql)
	assert.Empty(t, args)
}

func TestBuilder_BindingOrderStableUnderToggling(t *testing.T) {
	min := decimal.NewFromInt(1000)
	max := decimal.NewFromInt(5000)

	full, fullArgs := New("SELECT * FROM cars").
		ContainsText("name", "camry").
		EqualText("brand", "Toyota").
		AtLeast("price", &min).
		AtMost("price", &max).
		Build()

	// Drop one optional filter in the middle; the remaining bindings keep
	// their relative order.
	_, partialArgs := New("SELECT * FROM cars").
		ContainsText("name", "camry").
		AtLeast("price", &min).
		AtMost("price", &max).
		Build()

	require.Len(t, fullArgs, 4)
	require.Len(t, partialArgs, 3)
	assert.Equal(t, fullArgs[0], partialArgs[0])
	assert.Equal(t, fullArgs[2], partialArgs[1])
	assert.Equal(t, fullArgs[3], partialArgs[2])

	assert.Contains(t, full, "UPPER(REPLACE(name, ' ', '')) LIKE ?")
	assert.Contains(t, full, "UPPER(REPLACE(brand, ' ', '')) = ?")
	assert.NotContains(t, full, "camry", "probe values must be bound, not interpolated")
}

func TestBuilder_AnyContains(t *testing.T) {
	sql, args := New("SELECT * FROM cars").
		Where("status != ?", "DELETED").
		AnyContains(" toyota   camry ", "name", "brand", "description").
		Build()

	assert.Contains(t, sql, "status != ?")
	assert.Contains(t, sql, "(UPPER(REPLACE(name, ' ', '')) LIKE ? OR UPPER(REPLACE(brand, ' ', '')) LIKE ? OR UPPER(REPLACE(description, ' ', '')) LIKE ?)")
	require.Len(t, args, 4)
	assert.Equal(t, "DELETED", args[0])
	for _, a := range args[1:] {
		assert.Equal(t, "%TOYOTACAMRY%", a)
	}
}

func TestBuilder_RangeAndWindow(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC)

	sql, args := New("SELECT * FROM audit_log").
		AtLeast("logged_at", &from).
		AtMost("logged_at", &to).
		EqualText("action", "LOGIN").
		OrderBy("logged_at DESC, log_id DESC").
		Page(2, 50).
		Build()

	assert.Equal(t,
		"SELECT * FROM audit_log WHERE logged_at >= ? AND logged_at <= ? AND UPPER(REPLACE(action, ' ', '')) = ? ORDER BY logged_at DESC, log_id DESC LIMIT ? OFFSET ?",
		sql)
	require.Len(t, args, 5)
	assert.Equal(t, from, args[0])
	assert.Equal(t, to, args[1])
	assert.Equal(t, "LOGIN", args[2])
	assert.Equal(t, 50, args[3])
	assert.Equal(t, 50, args[4])
}
