package query

import (
	"fmt"
	"strings"
)

type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

var columns = map[Field]string{
	FieldRating:  "rating",
	FieldReviews: "reviews",
	FieldPrice:   "price",
	FieldName:    "name",
	FieldAuthor:  "author",
	FieldGenre:   "genre",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SQL renders the expression as a parameterised WHERE condition. Placeholders
// are numbered from startArg for Postgres and positional for SQLite.
func (e FilterExpression) SQL(d Dialect, startArg int) (string, []any) {
	r := sqlRenderer{dialect: d, next: startArg}

	and := make([]string, 0, len(e.And))
	for _, c := range e.And {
		and = append(and, r.clause(c))
	}
	or := make([]string, 0, len(e.Or))
	for _, c := range e.Or {
		or = append(or, r.clause(c))
	}

	orPart := "1 = 0"
	if len(or) > 0 {
		orPart = "(" + strings.Join(or, " OR ") + ")"
	}
	if len(and) == 0 {
		return orPart, r.args
	}
	return "(" + strings.Join(and, " AND ") + ") AND " + orPart, r.args
}

type sqlRenderer struct {
	dialect Dialect
	next    int
	args    []any
}

func (r *sqlRenderer) placeholder(v any) string {
	r.args = append(r.args, v)
	if r.dialect == SQLite {
		return "?"
	}
	p := fmt.Sprintf("$%d", r.next)
	r.next++
	return p
}

func (r *sqlRenderer) clause(c Clause) string {
	col := columns[c.Field]
	switch c.Op {
	case OpContains:
		s, _ := c.Value.(string)
		pattern := "%" + likeEscaper.Replace(s) + "%"
		if r.dialect == SQLite {
			return fmt.Sprintf(`lower(%s) LIKE lower(%s) ESCAPE '\'`, col, r.placeholder(pattern))
		}
		return fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, col, r.placeholder(pattern))
	case OpGt:
		return fmt.Sprintf("%s > %s", col, r.placeholder(c.Value))
	case OpLte:
		return fmt.Sprintf("%s <= %s", col, r.placeholder(c.Value))
	default:
		return fmt.Sprintf("%s >= %s", col, r.placeholder(c.Value))
	}
}
