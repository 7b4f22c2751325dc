package parsers

import (
	"encoding/csv"
	"strings"

	"github.com/omnivector-solutions/license-manager-sub000/core/utils"
)

// dslsParser handles `DSLicSrv -admin` getLicenseUsage CSV output. Columns
// of interest are Feature, Count, Inuse, User, Host and Tokens; a row with
// an empty user is a feature summary, a row naming a user is one checkout.
// Everything before the header line (connection banners, admin prompts) is
// ignored.
type dslsParser struct{}

func (dslsParser) ServerType() string { return ServerTypeDSLS }

func (dslsParser) Parse(raw string) Result {
	result := make(Result)

	lines := strings.Split(raw, "\n")
	header := -1
	for i, line := range lines {
		if strings.Contains(line, "Feature") && strings.Contains(line, "Inuse") {
			header = i
			break
		}
	}
	if header < 0 {
		return result
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(lines[header:], "\n")))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil || len(records) < 2 {
		return result
	}

	columns := make(map[string]int)
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}
	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for _, row := range records[1:] {
		feature := strings.ToLower(field(row, "Feature"))
		if feature == "" {
			continue
		}

		usage, seen := result[feature]
		if !seen {
			usage.Total, _ = utils.LenientInt(field(row, "Count"))
			usage.Used, _ = utils.LenientInt(field(row, "Inuse"))
		}

		if user := field(row, "User"); user != "" {
			booked, ok := utils.LenientInt(field(row, "Tokens"))
			if !ok {
				booked = 1
			}
			usage.Uses = append(usage.Uses, Use{
				Username: user,
				LeadHost: utils.StripDomain(field(row, "Host")),
				Booked:   booked,
			})
		}
		result[feature] = usage
	}
	return result
}
