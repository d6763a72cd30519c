package types

import (
	"regexp"
	"strconv"
	"strings"
)

// MsgInvalidEmail is shown to the user when a draft's email fails the local check.
const MsgInvalidEmail = "Please enter a valid email address"

// emailPattern requires a non-empty run before '@', after '@' and after a '.'.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Employee is one directory record as returned by the backend.
// ID is assigned by the backend and never changes once created.
type Employee struct {
	ID        int64  `json:"id" yaml:"id"`
	FirstName string `json:"firstName" yaml:"first_name"`
	LastName  string `json:"lastName" yaml:"last_name"`
	Email     string `json:"email" yaml:"email"`
}

// IDString is the decimal form of the ID, as matched by the search filter.
func (e Employee) IDString() string {
	return strconv.FormatInt(e.ID, 10)
}

// Draft is the editable part of an Employee. It is the body of create and update requests.
type Draft struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// DraftOf returns the editable fields of e, e.g. to prefill an edit form.
func DraftOf(e Employee) Draft {
	return Draft{FirstName: e.FirstName, LastName: e.LastName, Email: e.Email}
}

// Normalize trims surrounding whitespace from every field.
func (d Draft) Normalize() Draft {
	return Draft{
		FirstName: strings.TrimSpace(d.FirstName),
		LastName:  strings.TrimSpace(d.LastName),
		Email:     strings.TrimSpace(d.Email),
	}
}

// Validate checks the email format. Names are not checked here.
func (d Draft) Validate() error {
	if !ValidEmail(d.Email) {
		return Err(ErrValidation, nil, "%s: %q", MsgInvalidEmail, d.Email)
	}
	return nil
}

func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Stats are the counters shown above the table.
// RecentlyAdded is min(Total, 3); it carries no notion of time.
type Stats struct {
	Total         int `json:"total"`
	RecentlyAdded int `json:"recentlyAdded"`
}

const recentlyAddedCap = 3

func StatsOf(list []Employee) Stats {
	return Stats{
		Total:         len(list),
		RecentlyAdded: min(len(list), recentlyAddedCap),
	}
}
