// Package querybuilder renders the small set of SELECT and UPDATE shapes the
// repositories need, with $n placeholders numbered in argument order.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// args collects bound values and hands out their placeholders.
type args []any

func (a *args) bind(v any) string {
	*a = append(*a, v)
	return "$" + strconv.Itoa(len(*a))
}

// expand replaces each ? in expr with the placeholder of the next value.
func (a *args) expand(expr string, values []any) string {
	if len(values) == 0 {
		return expr
	}
	var out strings.Builder
	next := 0
	for _, r := range expr {
		if r == '?' && next < len(values) {
			out.WriteString(a.bind(values[next]))
			next++
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

// Condition is one predicate of a WHERE clause. Conditions are joined by AND.
type Condition func(a *args) string

func Eq(column string, value any) Condition {
	return func(a *args) string {
		return column + " = " + a.bind(value)
	}
}

// Between matches column values in the closed range [from, to].
func Between(column string, from, to any) Condition {
	return func(a *args) string {
		return column + " BETWEEN " + a.bind(from) + " AND " + a.bind(to)
	}
}

func where(buf *strings.Builder, conditions []Condition, a *args) {
	for i, c := range conditions {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		buf.WriteString(c(a))
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

// Limit caps the row count. Zero or negative leaves the query unbounded.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("select columns are required")
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("select table is required")
	}

	var (
		buf   strings.Builder
		bound args
	)
	fmt.Fprintf(&buf, "SELECT %s FROM %s", strings.Join(b.columns, ", "), b.table)
	where(&buf, b.where, &bound)
	if len(b.orderBy) > 0 {
		buf.WriteString(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		fmt.Fprintf(&buf, " LIMIT %d", b.limit)
	}
	return buf.String(), bound, nil
}

type assignment struct {
	column string
	value  any
	expr   string
	raw    bool
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns a SQL expression; each ? binds the next of values.
func (b *UpdateBuilder) SetExpr(column, expr string, values ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr, value: values, raw: true})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("update table is required")
	case len(b.sets) == 0:
		return "", nil, fmt.Errorf("update sets are required")
	}

	var (
		buf   strings.Builder
		bound args
	)
	buf.WriteString("UPDATE " + b.table + " SET ")
	seen := make(map[string]bool, len(b.sets))
	for i, s := range b.sets {
		if seen[s.column] {
			return "", nil, fmt.Errorf("column %s is set more than once", s.column)
		}
		seen[s.column] = true

		if i > 0 {
			buf.WriteString(", ")
		}
		if s.raw {
			buf.WriteString(s.column + " = " + bound.expand(s.expr, s.value.([]any)))
			continue
		}
		buf.WriteString(s.column + " = " + bound.bind(s.value))
	}
	where(&buf, b.where, &bound)
	return buf.String(), bound, nil
}
