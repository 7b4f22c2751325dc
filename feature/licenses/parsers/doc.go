// Package parsers converts raw vendor license server output into a
// canonical per-feature usage model.
//
// Each supported vendor (FlexLM, RLM, LM-X, LS-DYNA, OLicense, DSLS) has
// its own text grammar, implemented as a small line-oriented state machine.
// Formats that state a feature on one line and its counters or checkouts on
// later lines track the most recently seen feature explicitly; formats that
// repeat the feature on every line match it directly.
//
// Parsers never fail. Connection-refused banners, error output and any
// other unrecognized text produce an empty Result, which downstream code
// treats as zero usage.
package parsers
