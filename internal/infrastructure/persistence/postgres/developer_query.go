package postgres

import (
	"fmt"
	"strings"

	"developer-directory/internal/domain/developer"
)

// Names order by byte value to match ListQuery.Less on every driver.
var sortColumns = map[developer.SortField]string{
	developer.SortByExperience:  "experience",
	developer.SortByName:        `name COLLATE "C"`,
	developer.SortByJoiningDate: "joining_date",
}

type listStatement struct {
	Select string
	Count  string
	Args   []any
	// CountArgs is the prefix of Args used by the filter.
	CountArgs []any
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// buildListStatement renders the filter, order and window of q as SQL.
// q must already be normalized.
func buildListStatement(q developer.ListQuery) listStatement {
	var (
		conds []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Role != nil {
		conds = append(conds, "role = "+next(string(*q.Role)))
	}
	if q.Search != "" {
		p := next(escapeLike(q.Search))
		conds = append(conds, fmt.Sprintf(
			`(name ILIKE '%%' || %[1]s || '%%' ESCAPE '\' OR EXISTS (SELECT 1 FROM unnest(tech_stack) AS t(entry) WHERE t.entry ILIKE '%%' || %[1]s || '%%' ESCAPE '\'))`,
			p,
		))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	col, ok := sortColumns[q.SortBy]
	if !ok {
		col = sortColumns[developer.SortByExperience]
	}
	dir := "ASC"
	if q.SortOrder == developer.SortDesc {
		dir = "DESC"
	}

	countArgs := append([]any(nil), args...)
	limit := next(q.Limit)
	offset := next(q.Offset())

	return listStatement{
		Select: `SELECT ` + developerColumns + ` FROM developers` + where +
			fmt.Sprintf(` ORDER BY %s %s, id %s LIMIT %s OFFSET %s`, col, dir, dir, limit, offset),
		Count:     `SELECT COUNT(1) FROM developers` + where,
		Args:      args,
		CountArgs: countArgs,
	}
}
