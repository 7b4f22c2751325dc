package parsers

import (
	"regexp"
	"strings"

	"github.com/omnivector-solutions/license-manager-sub000/core/utils"
)

// rlmParser handles `rlmutil rlmstat -a` output. The status section states
// a feature on one line and its counters on the next, so counters attach to
// the most recently seen feature. Checkout lines repeat the feature name
// explicitly and carry user@host plus the checked-out quantity.
type rlmParser struct{}

var (
	rlmFeatureRe = regexp.MustCompile(`^\s*([\w-]+) v[\w.]+$`)
	rlmCountRe   = regexp.MustCompile(`^\s*count:\s*([\d,]+).*?\binuse:\s*([\d,]+)`)
	rlmUseRe     = regexp.MustCompile(`^\s*([\w-]+) v[\w.]+:\s+(\S+)@(\S+)\s+([\d,]+)(?:/\d+)?\s+at\s`)
)

func (rlmParser) ServerType() string { return ServerTypeRLM }

func (rlmParser) Parse(raw string) Result {
	result := make(Result)
	current := ""

	for _, line := range strings.Split(raw, "\n") {
		if m := rlmUseRe.FindStringSubmatch(line); m != nil {
			feature := strings.ToLower(m[1])
			booked, _ := utils.LenientInt(m[4])
			result.appendUse(feature, Use{
				Username: m[2],
				LeadHost: utils.StripDomain(m[3]),
				Booked:   booked,
			})
			continue
		}
		if m := rlmFeatureRe.FindStringSubmatch(line); m != nil {
			current = strings.ToLower(m[1])
			continue
		}
		if current == "" {
			continue
		}
		if m := rlmCountRe.FindStringSubmatch(line); m != nil {
			total, _ := utils.LenientInt(m[1])
			used, _ := utils.LenientInt(m[2])
			usage := result[current]
			usage.Total = total
			usage.Used = used
			result[current] = usage
			current = ""
		}
	}
	return result
}
