package sqlgen

import (
	"context"
	"fmt"
	"strings"
)

// TemplateGenerator is a deterministic rule-based generator. It derives a
// SELECT over a guessed subject table from the request text. It needs no
// external service, which makes it the default provider and the retry-safe
// baseline the contract asks for: identical input always yields identical SQL.
type TemplateGenerator struct {
	DefaultTable string
}

var _ Generator = &TemplateGenerator{}

func NewTemplateGenerator(defaultTable string) *TemplateGenerator {
	if defaultTable == "" {
		defaultTable = "report_data"
	}
	return &TemplateGenerator{DefaultTable: defaultTable}
}

// aggregate keywords in priority order
var aggregates = []struct {
	keyword  string
	function string
}{
	{"count", "COUNT(*)"},
	{"how many", "COUNT(*)"},
	{"average", "AVG(value)"},
	{"avg", "AVG(value)"},
	{"total", "SUM(value)"},
	{"sum", "SUM(value)"},
	{"maximum", "MAX(value)"},
	{"max", "MAX(value)"},
	{"minimum", "MIN(value)"},
	{"min", "MIN(value)"},
}

func (g *TemplateGenerator) Generate(ctx context.Context, history []Message, latest string, options ...Option) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	request := strings.TrimSpace(latest)
	if request == "" {
		return "", fmt.Errorf("empty request")
	}

	lower := strings.ToLower(request)
	table := g.subjectTable(lower)

	for _, agg := range aggregates {
		if strings.Contains(lower, agg.keyword) {
			return fmt.Sprintf("SELECT %s FROM %s", agg.function, table), nil
		}
	}

	if period := detectPeriod(lower); period != "" {
		return fmt.Sprintf(
			"SELECT DATE_TRUNC('%s', created_at) AS period, SUM(value) AS total FROM %s GROUP BY period ORDER BY period",
			period, table), nil
	}

	return fmt.Sprintf("SELECT * FROM %s LIMIT 100", table), nil
}

// subjectTable picks the last word that looks like a data noun, falling back
// to the configured default.
func (g *TemplateGenerator) subjectTable(lower string) string {
	stop := map[string]bool{
		"show": true, "me": true, "the": true, "a": true, "an": true,
		"of": true, "by": true, "per": true, "for": true, "all": true,
		"monthly": true, "weekly": true, "daily": true, "yearly": true,
	}
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '_'
	})
	for i := len(fields) - 1; i >= 0; i-- {
		if !stop[fields[i]] && len(fields[i]) > 2 {
			return fields[i]
		}
	}
	return g.DefaultTable
}

func detectPeriod(lower string) string {
	switch {
	case strings.Contains(lower, "daily"), strings.Contains(lower, "per day"):
		return "day"
	case strings.Contains(lower, "weekly"), strings.Contains(lower, "per week"):
		return "week"
	case strings.Contains(lower, "monthly"), strings.Contains(lower, "per month"):
		return "month"
	case strings.Contains(lower, "yearly"), strings.Contains(lower, "per year"):
		return "year"
	}
	return ""
}
