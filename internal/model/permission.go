package model

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// InstitutePermissions is the set of institute ids an admin may act on,
// kept sorted and free of duplicates.
type InstitutePermissions []int

// ParseInstitutePermissions parses a comma separated list of institute ids
// such as "3, 1,,3". Blank items are skipped.
func ParseInstitutePermissions(raw string) (InstitutePermissions, error) {
	perms := InstitutePermissions{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		id, err := strconv.Atoi(item)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%q is not a valid institute id", item)
		}
		perms = append(perms, id)
	}
	slices.Sort(perms)
	return slices.Compact(perms), nil
}

// Allows reports whether instituteID is in the set.
func (p InstitutePermissions) Allows(instituteID int) bool {
	_, found := slices.BinarySearch(p, instituteID)
	return found
}

// String renders the canonical comma form, e.g. "1,3".
func (p InstitutePermissions) String() string {
	parts := make([]string, len(p))
	for i, id := range p {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// MarshalJSON renders the canonical comma form.
func (p InstitutePermissions) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}
