package licenses

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/omnivector-solutions/license-manager-sub000/core/backend"
	"github.com/omnivector-solutions/license-manager-sub000/feature/licenses/parsers"
)

// ReportItem is the canonical usage snapshot for one configured feature.
type ReportItem struct {
	FeatureID      int
	ProductFeature string
	ServerType     string
	GraceTime      int
	Used           int
	Total          int
	Uses           []parsers.Use
}

// BuildReport queries every configuration and maps the vendor output onto
// the configured features. A configuration whose server farm is down, or
// whose output the parser cannot read, still yields one item per feature
// with zeroed counts so downstream reservation math can treat the server
// as an outage instead of skipping it.
func BuildReport(ctx context.Context, log *zap.Logger, source UsageSource, configs []backend.Configuration) []ReportItem {
	var report []ReportItem
	for _, config := range configs {
		parser, ok := parsers.ForServerType(config.Type)
		if !ok {
			log.Warn("no parser for server type",
				zap.String("configuration", config.Name),
				zap.String("server_type", config.Type))
			report = append(report, zeroItems(config)...)
			continue
		}

		out, err := source.Output(ctx, config)
		if err != nil {
			log.Warn("license server unreachable",
				zap.String("configuration", config.Name),
				zap.Error(err))
			report = append(report, zeroItems(config)...)
			continue
		}

		parsed := parser.Parse(out)
		for _, feature := range config.Features {
			usage := parsed[strings.ToLower(feature.Name)]
			report = append(report, ReportItem{
				FeatureID:      feature.ID,
				ProductFeature: feature.ProductFeature(),
				ServerType:     config.Type,
				GraceTime:      config.GraceTime,
				Used:           usage.Used,
				Total:          usage.Total,
				Uses:           usage.Uses,
			})
		}
	}
	return report
}

func zeroItems(config backend.Configuration) []ReportItem {
	items := make([]ReportItem, 0, len(config.Features))
	for _, feature := range config.Features {
		items = append(items, ReportItem{
			FeatureID:      feature.ID,
			ProductFeature: feature.ProductFeature(),
			ServerType:     config.Type,
			GraceTime:      config.GraceTime,
		})
	}
	return items
}

// FeatureUpdates flattens a report into the bulk update payload for the
// backend feature table.
func FeatureUpdates(configs []backend.Configuration, report []ReportItem) []backend.FeatureUpdate {
	names := make(map[int][2]string)
	for _, config := range configs {
		for _, feature := range config.Features {
			names[feature.ID] = [2]string{feature.Product.Name, feature.Name}
		}
	}

	updates := make([]backend.FeatureUpdate, 0, len(report))
	for _, item := range report {
		name, ok := names[item.FeatureID]
		if !ok {
			continue
		}
		updates = append(updates, backend.FeatureUpdate{
			ProductName: name[0],
			FeatureName: name[1],
			Total:       item.Total,
			Used:        item.Used,
		})
	}
	return updates
}
