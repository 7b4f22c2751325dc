package parsers

import (
	"regexp"
	"strings"

	"github.com/omnivector-solutions/license-manager-sub000/core/utils"
)

// lsdynaParser handles `lstc_qrun -s` output. The "Running Programs" block
// lists one row per core held by a user, naming the program explicitly, so
// every row counts as a single checkout. The "LICENSE INFORMATION" table
// carries the CPUS USED FREE MAX counters; the used column shows "-" when
// nothing is checked out, and total is used plus free.
type lsdynaParser struct{}

var (
	lsdynaUseRe = regexp.MustCompile(
		`^\s+(\S+)\s+(\d+)@(\S+)\s+(\S+)\s+.*\d+\s*$`)
	lsdynaProgramRe = regexp.MustCompile(
		`^([A-Z][\w-]*)\s+\d+/\d+/\d+\s+(\S+)\s+([\d,]+)\s+([\d,]+)\s+\|`)
)

func (lsdynaParser) ServerType() string { return ServerTypeLSDyna }

func (lsdynaParser) Parse(raw string) Result {
	result := make(Result)

	for _, line := range strings.Split(raw, "\n") {
		if m := lsdynaProgramRe.FindStringSubmatch(line); m != nil {
			feature := strings.ToLower(m[1])
			used, usedOK := utils.LenientInt(m[2])
			if !usedOK {
				// The used column is "-" when idle.
				used = 0
			}
			free, _ := utils.LenientInt(m[3])
			usage := result[feature]
			usage.Used = used
			usage.Total = used + free
			result[feature] = usage
			continue
		}
		if m := lsdynaUseRe.FindStringSubmatch(line); m != nil {
			feature := strings.ToLower(m[4])
			result.appendUse(feature, Use{
				Username: m[1],
				LeadHost: utils.StripDomain(m[3]),
				Booked:   1,
			})
		}
	}
	return result
}
