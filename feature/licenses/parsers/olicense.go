package parsers

import (
	"regexp"
	"strings"

	"github.com/omnivector-solutions/license-manager-sub000/core/utils"
)

// olicenseParser handles `olixtool lv` output. A feature is announced by a
// "name;" line; its FloatCount line carries the total and, when anything is
// checked out, an "(N in use)" qualifier. Checkouts are listed under
// FloatsLockedBy as count*user@host lines.
type olicenseParser struct{}

var (
	olicenseFeatureRe = regexp.MustCompile(`^\s*([\w-]+);`)
	olicenseCountRe   = regexp.MustCompile(`^\s*FloatCount:\s*([\d,]+)(?:\s*\(([\d,]+) in use\))?`)
	olicenseUseRe     = regexp.MustCompile(`^\s*([\d,]+)\*([\w.-]+)@([\w.-]+)`)
)

func (olicenseParser) ServerType() string { return ServerTypeOLicense }

func (olicenseParser) Parse(raw string) Result {
	result := make(Result)
	current := ""

	for _, line := range strings.Split(raw, "\n") {
		if m := olicenseCountRe.FindStringSubmatch(line); m != nil {
			if current == "" {
				continue
			}
			total, _ := utils.LenientInt(m[1])
			used := 0
			if m[2] != "" {
				used, _ = utils.LenientInt(m[2])
			}
			usage := result[current]
			usage.Total = total
			usage.Used = used
			result[current] = usage
			continue
		}
		if m := olicenseUseRe.FindStringSubmatch(line); m != nil {
			if current == "" {
				continue
			}
			booked, _ := utils.LenientInt(m[1])
			result.appendUse(current, Use{
				Username: m[2],
				LeadHost: utils.StripDomain(m[3]),
				Booked:   booked,
			})
			continue
		}
		if m := olicenseFeatureRe.FindStringSubmatch(line); m != nil {
			current = strings.ToLower(m[1])
			if _, ok := result[current]; !ok {
				result[current] = FeatureUsage{}
			}
		}
	}
	return result
}
