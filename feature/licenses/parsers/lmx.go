package parsers

import (
	"regexp"
	"strings"

	"github.com/omnivector-solutions/license-manager-sub000/core/utils"
)

// lmxParser handles `lmxendutil -licstat` output. A Feature header opens a
// block; the "N of M license(s) used" line and the per-checkout lines that
// follow belong to that block.
type lmxParser struct{}

var (
	lmxFeatureRe = regexp.MustCompile(`^Feature:\s+(\S+)\s+Version:`)
	lmxCountRe   = regexp.MustCompile(`^([\d,]+) of ([\d,]+) license\(s\) used`)
	lmxUseRe     = regexp.MustCompile(`^([\d,]+) license\(s\) used by (\S+)@(\S+)\s+\[`)
)

func (lmxParser) ServerType() string { return ServerTypeLMX }

func (lmxParser) Parse(raw string) Result {
	result := make(Result)
	current := ""

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		if m := lmxFeatureRe.FindStringSubmatch(line); m != nil {
			current = strings.ToLower(m[1])
			if _, ok := result[current]; !ok {
				result[current] = FeatureUsage{}
			}
			continue
		}
		if current == "" {
			continue
		}
		if m := lmxCountRe.FindStringSubmatch(line); m != nil {
			used, _ := utils.LenientInt(m[1])
			total, _ := utils.LenientInt(m[2])
			usage := result[current]
			usage.Used = used
			usage.Total = total
			result[current] = usage
			continue
		}
		if m := lmxUseRe.FindStringSubmatch(line); m != nil {
			booked, _ := utils.LenientInt(m[1])
			result.appendUse(current, Use{
				Username: m[2],
				LeadHost: utils.StripDomain(m[3]),
				Booked:   booked,
			})
		}
	}
	return result
}
