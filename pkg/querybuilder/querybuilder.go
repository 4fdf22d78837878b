// Package querybuilder assembles optional, independently-toggleable filter
// predicates into a single parameterized SQL query. Values are always bound,
// never interpolated into the query text.
package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// Normalize case-folds s and discards all internal whitespace, so that
// "  Toyota   Camry " and "toyotacamry" compare equal. The same folding is
// applied to stored column values through NormalizeExpr.
func Normalize(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// NormalizeExpr wraps a column expression with the SQL equivalent of
// Normalize, keeping probe and stored value folding symmetric.
func NormalizeExpr(expr string) string {
	return fmt.Sprintf("UPPER(REPLACE(%s, ' ', ''))", expr)
}

// Window converts a 1-based page number and page size into a LIMIT/OFFSET
// pair. Page numbers below 1 are treated as 1.
func Window(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return pageSize, (page - 1) * pageSize
}

// Builder accumulates predicates in call order. Skipped optional filters do
// not consume a binding slot, so the binding order of the remaining filters
// is unaffected by toggling any one of them.
type Builder struct {
	base    string
	conds   []string
	args    []any
	orderBy string
	limit   int
	offset  int
	window  bool
}

// New starts a builder from a base SELECT statement without a WHERE clause.
func New(base string) *Builder {
	return &Builder{base: base}
}

// Where appends an unconditional predicate with its bindings.
func (b *Builder) Where(cond string, args ...any) *Builder {
	b.conds = append(b.conds, cond)
	b.args = append(b.args, args...)
	return b
}

// ContainsText appends a normalized substring match on expr. Blank probes
// are skipped.
func (b *Builder) ContainsText(expr, probe string) *Builder {
	if strings.TrimSpace(probe) == "" {
		return b
	}
	return b.Where(NormalizeExpr(expr)+" LIKE ?", "%"+Normalize(probe)+"%")
}

// AnyContains appends one OR-group matching the normalized probe against any
// of the given column expressions. Blank probes are skipped.
func (b *Builder) AnyContains(probe string, exprs ...string) *Builder {
	if strings.TrimSpace(probe) == "" || len(exprs) == 0 {
		return b
	}
	parts := make([]string, len(exprs))
	arg := "%" + Normalize(probe) + "%"
	for i, expr := range exprs {
		parts[i] = NormalizeExpr(expr) + " LIKE ?"
		b.args = append(b.args, arg)
	}
	b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
	return b
}

// EqualText appends a normalized equality match on expr. Blank probes are
// skipped.
func (b *Builder) EqualText(expr, probe string) *Builder {
	if strings.TrimSpace(probe) == "" {
		return b
	}
	return b.Where(NormalizeExpr(expr)+" = ?", Normalize(probe))
}

// Equal appends expr = v. Nil values (including typed nil pointers) are
// skipped; pointers are dereferenced before binding.
func (b *Builder) Equal(expr string, v any) *Builder {
	return b.compare(expr, "=", v)
}

// AtLeast appends an inclusive lower bound expr >= v, skipping nil values.
func (b *Builder) AtLeast(expr string, v any) *Builder {
	return b.compare(expr, ">=", v)
}

// AtMost appends an inclusive upper bound expr <= v, skipping nil values.
func (b *Builder) AtMost(expr string, v any) *Builder {
	return b.compare(expr, "<=", v)
}

func (b *Builder) compare(expr, op string, v any) *Builder {
	val, ok := deref(v)
	if !ok {
		return b
	}
	return b.Where(fmt.Sprintf("%s %s ?", expr, op), val)
}

// OrderBy sets the deterministic ordering key, e.g. "log_id DESC".
func (b *Builder) OrderBy(order string) *Builder {
	b.orderBy = order
	return b
}

// Page applies a row window for the given 1-based page.
func (b *Builder) Page(page, pageSize int) *Builder {
	b.limit, b.offset = Window(page, pageSize)
	b.window = true
	return b
}

// Limit caps the result set without an offset.
func (b *Builder) Limit(n int) *Builder {
	b.limit, b.offset = n, 0
	b.window = true
	return b
}

// Build renders the final query text and its ordered parameter bindings.
func (b *Builder) Build() (string, []any) {
	var sb strings.Builder
	sb.WriteString(b.base)
	if len(b.conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.conds, " AND "))
	}
	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}
	args := make([]any, len(b.args))
	copy(args, b.args)
	if b.window {
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, b.limit, b.offset)
	}
	return sb.String(), args
}

// deref unwraps v for binding. It reports ok=false for nil interfaces and
// nil pointers so optional filters can be skipped.
func deref(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		return rv.Elem().Interface(), true
	}
	return v, true
}
