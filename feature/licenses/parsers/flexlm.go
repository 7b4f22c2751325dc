package parsers

import (
	"regexp"
	"strings"

	"github.com/omnivector-solutions/license-manager-sub000/core/utils"
)

// flexlmParser handles `lmstat -a` output. Feature headers carry the issued
// and in-use totals; the indented checkout lines that follow belong to the
// most recently seen feature. A checkout of a single license has no trailing
// count, so the quantity defaults to 1.
type flexlmParser struct{}

var (
	flexlmFeatureRe = regexp.MustCompile(
		`^Users of (\S+):\s+\(Total of ([\d,]+) licenses? issued;\s+Total of ([\d,]+) licenses? in use\)`)
	flexlmUseRe = regexp.MustCompile(
		`^\s+(\S+)\s+(\S+)\s+\S.*,\s+start\s.*?(?:,\s+([\d,]+) licenses?)?\s*$`)
)

func (flexlmParser) ServerType() string { return ServerTypeFlexLM }

func (flexlmParser) Parse(raw string) Result {
	result := make(Result)
	current := ""

	for _, line := range strings.Split(raw, "\n") {
		if m := flexlmFeatureRe.FindStringSubmatch(line); m != nil {
			feature := strings.ToLower(m[1])
			total, _ := utils.LenientInt(m[2])
			used, _ := utils.LenientInt(m[3])
			result[feature] = FeatureUsage{Total: total, Used: used}
			current = feature
			continue
		}
		if current == "" {
			continue
		}
		if m := flexlmUseRe.FindStringSubmatch(line); m != nil {
			booked := 1
			if m[3] != "" {
				booked, _ = utils.LenientInt(m[3])
			}
			result.appendUse(current, Use{
				Username: m[1],
				LeadHost: utils.StripDomain(m[2]),
				Booked:   booked,
			})
		}
	}
	return result
}
