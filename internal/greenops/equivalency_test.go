package greenops_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/binderlca/internal/greenops"
)

func TestCalculate(t *testing.T) {
	out, err := greenops.Calculate(150)
	require.NoError(t, err)

	assert.False(t, out.IsEmpty)
	assert.InDelta(t, 150.0, out.InputKg, 1e-9)
	require.Len(t, out.Results, 4)

	assert.Equal(t, greenops.EquivalencyMilesDriven, out.Results[0].Type)
	assert.InDelta(t, 781.25, out.Results[0].Value, 0.01)
	assert.Equal(t, "781", out.Results[0].FormattedValue)

	assert.Equal(t, greenops.EquivalencySmartphonesCharged, out.Results[1].Type)
	assert.InDelta(t, 18248.18, out.Results[1].Value, 0.01)
	assert.Equal(t, "18,248", out.Results[1].FormattedValue)

	assert.Equal(t, greenops.EquivalencyTreeSeedlings, out.Results[2].Type)
	assert.InDelta(t, 2.5, out.Results[2].Value, 1e-9)

	assert.Equal(t, "Equivalent to driving ~781 miles or charging ~18,248 smartphones", out.DisplayText)
	assert.Equal(t, "(≈ 781 mi, 18,248 phones)", out.CompactText)
}

func TestCalculate_TreesOnlyFromThreshold(t *testing.T) {
	out, err := greenops.Calculate(59.9)
	require.NoError(t, err)
	assert.Len(t, out.Results, 2)

	out, err = greenops.Calculate(greenops.TreeThresholdKg)
	require.NoError(t, err)
	assert.Len(t, out.Results, 4)
}

func TestCalculate_BelowMinimum(t *testing.T) {
	out, err := greenops.Calculate(0.5)
	require.NoError(t, err)
	assert.True(t, out.IsEmpty)
	assert.Empty(t, out.Results)
	assert.Empty(t, out.DisplayText)
}

func TestCalculate_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		kg      float64
		wantErr error
	}{
		{name: "negative", kg: -1, wantErr: greenops.ErrNegativeValue},
		{name: "NaN", kg: math.NaN(), wantErr: greenops.ErrCalculationOverflow},
		{name: "infinity", kg: math.Inf(1), wantErr: greenops.ErrCalculationOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := greenops.Calculate(tt.kg)
			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, out.IsEmpty)
		})
	}
}

func TestCalculate_LargeValuesAbbreviate(t *testing.T) {
	out, err := greenops.Calculate(1_000_000)
	require.NoError(t, err)
	assert.Contains(t, out.Results[1].FormattedValue, "million")
}

func TestEquivalencyType_String(t *testing.T) {
	assert.Equal(t, "MilesDriven", greenops.EquivalencyMilesDriven.String())
	assert.Equal(t, "HomeDays", greenops.EquivalencyHomeDays.String())
	assert.Equal(t, "EquivalencyType(99)", greenops.EquivalencyType(99).String())

	text, err := greenops.EquivalencyTreeSeedlings.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "TreeSeedlings", string(text))
}
