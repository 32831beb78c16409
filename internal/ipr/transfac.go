package ipr

import (
	"regexp"
	"strings"
)

// repeatSuffix matches the "_1".."_3" suffixes of repeated domain names
var repeatSuffix = regexp.MustCompile(`_[1-3]`)

// Transfac maps normalized domain names to TRANSFAC class labels, ex:
// "BHLH" -> "1.2"
type Transfac map[string]string

// Unmapped is an ordered set of normalized domain names that had no
// TRANSFAC class
type Unmapped struct {
	names []string
	seen  map[string]bool
}

// add a name if it isn't already in the set
func (u *Unmapped) add(name string) {
	if u.seen == nil {
		u.seen = make(map[string]bool)
	}
	if u.seen[name] {
		return
	}
	u.seen[name] = true
	u.names = append(u.names, name)
}

// Names returns the unmapped domain names in the order they were first missed
func (u *Unmapped) Names() []string {
	return append([]string(nil), u.names...)
}

// Len is the number of distinct unmapped names
func (u *Unmapped) Len() int {
	return len(u.names)
}

// NormalizeDomain rewrites an InterProScan domain name into the key format
// of the TRANSFAC table. The steps are order dependent.
func NormalizeDomain(name string) string {
	name = strings.ReplaceAll(name, " domain", " ")
	name = strings.ReplaceAll(name, "-domain", " ")
	name = strings.NewReplacer("(", "", ")", "").Replace(name)
	name = strings.ToUpper(name)
	name = strings.ReplaceAll(name, "WINGED HELIX", "")
	name = strings.ReplaceAll(name, "-", " ")
	name = repeatSuffix.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, "RELATED", "")
	return strings.TrimSpace(name)
}

// Map looks up each domain name candidate and returns the longest TRANSFAC
// class found. The first candidate wins ties. Misses are added to unmapped.
func (t Transfac) Map(domains [2]string, unmapped *Unmapped) string {
	best := ""
	for _, d := range domains {
		key := NormalizeDomain(d)

		class, ok := t[key]
		if !ok {
			unmapped.add(key)
			continue
		}

		if len(class) > len(best) {
			best = class
		}
	}
	return best
}

// FormatTransfac pads a TRANSFAC class to the dotted five level notation
// used by SABINE, ex: "2.1" -> "2.1.0.0.0."
func FormatTransfac(class string) string {
	out := class + "."
	for len(out) <= 9 {
		out += "0."
	}
	return out
}
