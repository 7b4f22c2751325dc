package parsers

// Use is one checkout line found in vendor license server output.
type Use struct {
	Username string
	// LeadHost is the short hostname of the checkout, with any domain
	// suffix already stripped to match scheduler-side hostnames.
	LeadHost string
	Booked   int
}

// FeatureUsage is the canonical usage snapshot of one feature.
type FeatureUsage struct {
	Total int
	Used  int
	Uses  []Use
}

// Result maps lowercase feature names to their usage. A feature present in
// the output with zero checkouts still appears, with an empty Uses slice.
type Result map[string]FeatureUsage

// Parser converts one vendor's raw CLI output into a Result. Parsers never
// fail: unrecognized output, error banners and connection refusals all yield
// an empty Result.
type Parser interface {
	// ServerType is the vendor identifier used in backend configurations
	// and scheduler license names.
	ServerType() string
	Parse(raw string) Result
}

var registry = map[string]Parser{
	ServerTypeFlexLM:   flexlmParser{},
	ServerTypeRLM:      rlmParser{},
	ServerTypeLMX:      lmxParser{},
	ServerTypeLSDyna:   lsdynaParser{},
	ServerTypeOLicense: olicenseParser{},
	ServerTypeDSLS:     dslsParser{},
}

// Supported vendor server types.
const (
	ServerTypeFlexLM   = "flexlm"
	ServerTypeRLM      = "rlm"
	ServerTypeLMX      = "lmx"
	ServerTypeLSDyna   = "lsdyna"
	ServerTypeOLicense = "olicense"
	ServerTypeDSLS     = "dsls"
)

// ForServerType returns the parser registered for a vendor server type.
func ForServerType(serverType string) (Parser, bool) {
	p, ok := registry[serverType]
	return p, ok
}

// appendUse records a checkout against a feature, creating the entry when
// the usage section precedes the feature's counter lines.
func (r Result) appendUse(feature string, use Use) {
	usage := r[feature]
	usage.Uses = append(usage.Uses, use)
	r[feature] = usage
}
