package sqlgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateGenerator(t *testing.T) {
	g := NewTemplateGenerator("report_data")

	tests := []struct {
		name    string
		request string
		want    string
	}{
		{
			name:    "count aggregate",
			request: "how many orders",
			want:    "SELECT COUNT(*) FROM orders",
		},
		{
			name:    "sum aggregate",
			request: "total sales",
			want:    "SELECT SUM(value) FROM sales",
		},
		{
			name:    "average aggregate",
			request: "show me the average of payments",
			want:    "SELECT AVG(value) FROM payments",
		},
		{
			name:    "period grouping",
			request: "monthly revenue",
			want:    "SELECT DATE_TRUNC('month', created_at) AS period, SUM(value) AS total FROM revenue GROUP BY period ORDER BY period",
		},
		{
			name:    "plain listing",
			request: "show me the customers",
			want:    "SELECT * FROM customers LIMIT 100",
		},
		{
			name:    "stop words fall back to default table",
			request: "show me all",
			want:    "SELECT * FROM report_data LIMIT 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.Generate(context.Background(), nil, tt.request)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemplateGeneratorDeterministic(t *testing.T) {
	g := NewTemplateGenerator("")

	first, err := g.Generate(context.Background(), nil, "weekly signups")
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), nil, "weekly signups")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTemplateGeneratorErrors(t *testing.T) {
	g := NewTemplateGenerator("report_data")

	_, err := g.Generate(context.Background(), nil, "   ")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.Generate(ctx, nil, "total sales")
	assert.ErrorIs(t, err, context.Canceled)
}
