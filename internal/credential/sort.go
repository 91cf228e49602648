package credential

import (
	"sort"
	"strings"
)

// SortByName orders credentials by name, case-insensitively, then by issuer.
func SortByName(cs []*Credential) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := strings.ToLower(cs[i].Name), strings.ToLower(cs[j].Name)
		if a != b {
			return a < b
		}
		return strings.ToLower(cs[i].Issuer) < strings.ToLower(cs[j].Issuer)
	})
}

// FindByName returns the first credential whose name matches, ignoring case.
func FindByName(cs []*Credential, name string) (*Credential, bool) {
	for _, c := range cs {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return nil, false
}
