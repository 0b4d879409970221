package developer

import (
	"strings"
)

type SortField string

const (
	SortByExperience  SortField = "experience"
	SortByName        SortField = "name"
	SortByJoiningDate SortField = "joining_date"
)

// ParseSortField falls back to experience for anything it does not recognise.
func ParseSortField(s string) SortField {
	switch strings.TrimSpace(s) {
	case "name":
		return SortByName
	case "joining_date", "joiningDate":
		return SortByJoiningDate
	default:
		return SortByExperience
	}
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return SortDesc
	}
	return SortAsc
}

const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100
)

type ListQuery struct {
	Role      *Role
	Search    string
	SortBy    SortField
	SortOrder SortOrder
	Page      int
	Limit     int
}

// Normalize applies paging defaults and fills in an unset sort.
func (q ListQuery) Normalize() ListQuery {
	q.Search = strings.TrimSpace(q.Search)
	if q.SortBy == "" {
		q.SortBy = SortByExperience
	}
	if q.SortOrder == "" {
		q.SortOrder = SortAsc
	}
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

func (q ListQuery) Offset() int {
	if q.Page <= 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// Matches reports whether d passes the role filter and the search text.
// Search is a case-insensitive literal substring over the name and each
// tech stack entry.
func (q ListQuery) Matches(d Developer) bool {
	if q.Role != nil && d.Role != *q.Role {
		return false
	}
	if q.Search == "" {
		return true
	}
	needle := strings.ToLower(q.Search)
	if strings.Contains(strings.ToLower(d.Name), needle) {
		return true
	}
	for _, t := range d.TechStack {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

// Less orders a before b under the query's sort, using the id as tie-breaker.
func (q ListQuery) Less(a, b Developer) bool {
	c := compareBy(q.SortBy, a, b)
	if c == 0 {
		c = strings.Compare(a.ID.String(), b.ID.String())
	}
	if q.SortOrder == SortDesc {
		return c > 0
	}
	return c < 0
}

func compareBy(field SortField, a, b Developer) int {
	switch field {
	case SortByName:
		return strings.Compare(a.Name, b.Name)
	case SortByJoiningDate:
		return a.JoiningDate.Compare(b.JoiningDate)
	default:
		switch {
		case a.Experience < b.Experience:
			return -1
		case a.Experience > b.Experience:
			return 1
		}
		return 0
	}
}
