package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/testutil"
)

func phMaterial(name string, ph *float64, delta *float64) model.Material {
	return model.Material{Name: name, Attributes: model.Attributes{PH: ph, PHDelta: delta}}
}

func TestEstimatePH_IonMode(t *testing.T) {
	tests := []struct {
		name     string
		ph       float64
		pct      float64
		expected float64
		delta    float64
	}{
		{name: "single neutral material at 100%", ph: 7, pct: 100, expected: 7, delta: 0.05},
		{name: "pure acid at 100%", ph: 3, pct: 100, expected: 3, delta: 1e-9},
		{name: "acid diluted tenfold", ph: 2, pct: 10, expected: 3, delta: 1e-9},
		{name: "base at 100%", ph: 9, pct: 100, expected: 9, delta: 1e-9},
		{name: "base diluted tenfold", ph: 9, pct: 10, expected: 8, delta: 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newForm()
			testutil.SetEntry(f, 1, phMaterial("X", model.Float(tt.ph), nil), tt.pct)
			require.NoError(t, Normalize(f))

			got := EstimatePH(f, model.PHModeIon, DefaultReferencePH)
			assert.InDelta(t, tt.expected, got, tt.delta)
		})
	}
}

func TestEstimatePH_IonModeIgnoresDiluent(t *testing.T) {
	f := newForm()
	testutil.SetEntry(f, 1, phMaterial("acid", model.Float(3), nil), 20)
	require.NoError(t, Normalize(f))
	require.InDelta(t, 80.0, f.Diluent.Percentage, 1e-9)

	withoutDiluent := -math.Log10(0.2 * 1e-3)
	assert.InDelta(t, withoutDiluent, EstimatePH(f, model.PHModeIon, DefaultReferencePH), 1e-9)
}

func TestEstimatePH_IonModeNeutralization(t *testing.T) {
	f := newForm()
	testutil.SetEntry(f, 1, phMaterial("acid", model.Float(3), nil), 50)
	testutil.SetEntry(f, 2, phMaterial("base", model.Float(11), nil), 50)
	require.NoError(t, Normalize(f))

	// H = 0.5e-3, OH = 0.5e-3: they cancel to neutral.
	assert.InDelta(t, 7.0, EstimatePH(f, model.PHModeIon, DefaultReferencePH), 1e-9)
}

func TestEstimatePH_IonModeFallbacks(t *testing.T) {
	f := newForm()
	testutil.SetEntry(f, 1, phMaterial("delta only", nil, model.Float(-0.4)), 1)
	require.NoError(t, Normalize(f))

	// Characteristic pH is 3.5 - 0.4 = 3.1 at 1%; the diluent adds nothing.
	expected := -math.Log10(0.01 * math.Pow(10, -3.1))
	assert.InDelta(t, expected, EstimatePH(f, model.PHModeIon, DefaultReferencePH), 1e-9)

	empty := newForm()
	require.NoError(t, Normalize(empty))
	assert.InDelta(t, 7.0, EstimatePH(empty, model.PHModeIon, DefaultReferencePH), 1e-9)
}

func TestEstimatePH_LinearMode(t *testing.T) {
	tests := []struct {
		name     string
		material model.Material
		pct      float64
		expected float64
	}{
		{
			name:     "delta coefficient",
			material: phMaterial("citric acid", model.Float(2.2), model.Float(-0.4)),
			pct:      0.2,
			expected: 3.5 - 0.08,
		},
		{
			name:     "missing coefficient uses raw pH",
			material: phMaterial("juice", model.Float(4.5), nil),
			pct:      10,
			expected: 3.5 + (4.5-3.5)*0.1,
		},
		{
			name:     "missing raw pH assumes neutral",
			material: phMaterial("unknown", nil, nil),
			pct:      10,
			expected: 3.5 + (7-3.5)*0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newForm()
			testutil.SetEntry(f, 1, tt.material, tt.pct)
			require.NoError(t, Normalize(f))

			assert.InDelta(t, tt.expected, EstimatePH(f, model.PHModeLinear, DefaultReferencePH), 1e-9)
		})
	}
}

func TestEstimatePH_LinearModeEmptyIsReference(t *testing.T) {
	f := newForm()
	require.NoError(t, Normalize(f))
	assert.Equal(t, 4.0, EstimatePH(f, model.PHModeLinear, 4.0))
}
