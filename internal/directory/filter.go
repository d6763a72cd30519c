package directory

import (
	"empdir/internal/types"
	"strings"
)

// Apply returns the employees of list matching term, in list order.
// An employee matches if the lowercased term is a substring of its lowercased first name,
// last name or email, or of its decimal id. The empty term matches everything.
func Apply(list []types.Employee, term string) []types.Employee {
	needle := strings.ToLower(term)
	out := make([]types.Employee, 0, len(list))
	for _, e := range list {
		if matches(e, needle) {
			out = append(out, e)
		}
	}
	return out
}

// Matches reports whether e matches term, ignoring case.
func Matches(e types.Employee, term string) bool {
	return matches(e, strings.ToLower(term))
}

func matches(e types.Employee, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(e.FirstName), lowerTerm) ||
		strings.Contains(strings.ToLower(e.LastName), lowerTerm) ||
		strings.Contains(strings.ToLower(e.Email), lowerTerm) ||
		strings.Contains(e.IDString(), lowerTerm)
}
