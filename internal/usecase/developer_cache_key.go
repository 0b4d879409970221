package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"developer-directory/internal/domain/developer"
)

const developerListKeyPrefix = "developers:list:"

type developerListCacheKeyInput struct {
	Role      string `json:"role"`
	Search    string `json:"search"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
}

// DeveloperListCacheKey hashes a normalized query. Search is lowercased since
// matching is case-insensitive; inner whitespace is kept because it is
// significant to a substring match.
func DeveloperListCacheKey(q developer.ListQuery) string {
	q = q.Normalize()
	in := developerListCacheKeyInput{
		Search:    strings.ToLower(q.Search),
		SortBy:    string(q.SortBy),
		SortOrder: string(q.SortOrder),
		Page:      q.Page,
		Limit:     q.Limit,
	}
	if q.Role != nil {
		in.Role = string(*q.Role)
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return developerListKeyPrefix + hex.EncodeToString(sum[:])
}
