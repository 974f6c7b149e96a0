package breakeven

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableFormatter_Format(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	req := solver.RequestFor(scenarioA())
	result, err := solver.Solve(context.Background(), req)
	require.NoError(t, err)

	out := (&TableFormatter{}).Format(result)

	assert.Contains(t, out, "BREAK-EVEN DEDUCTIONS")
	assert.Contains(t, out, "✓ Break-even found")
	assert.Contains(t, out, "₹52500.00")
	assert.Contains(t, out, "₹425001.00")
	assert.Contains(t, out, "Currently claimed:           ₹585000.00")
	assert.Contains(t, out, "Shortfall:                   ₹0.00")
}

func TestTableFormatter_FormatNever(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	result, err := solver.Solve(context.Background(), Request{Income: d(300000)})
	require.NoError(t, err)

	out := (&TableFormatter{}).Format(result)
	assert.Contains(t, out, "⚠ Old regime never cheaper")
	assert.NotContains(t, out, "THRESHOLD")
}

func TestTableFormatter_FormatSweep(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	sweep, err := solver.Sweep(context.Background(), d(300000), d(1200000), d(300000), true)
	require.NoError(t, err)

	out := (&TableFormatter{}).FormatSweep(sweep)
	assert.Contains(t, out, "BREAK-EVEN DEDUCTIONS BY INCOME")
	assert.Contains(t, out, "3.00L")
	assert.Contains(t, out, "4.25L")
	assert.Contains(t, out, "RECOMMENDATIONS")
}

func TestTableFormatter_FormatShort(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "999", tf.formatShort(d(999)))
	assert.Equal(t, "1.50L", tf.formatShort(d(150000)))
	assert.Equal(t, "2.50Cr", tf.formatShort(d(25000000)))
}

func TestJSONFormatter_Format(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	result, err := solver.Solve(context.Background(), Request{Income: d(1200000), StandardDeduction: true})
	require.NoError(t, err)

	out, err := (&JSONFormatter{Pretty: true}).Format(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "found", decoded["status"])
	assert.Equal(t, "425001", decoded["threshold"])
}
