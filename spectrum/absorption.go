package spectrum

import (
	"fmt"
	"slices"

	"github.com/michaelplews/opus/encoding"
	"github.com/michaelplews/opus/errs"
)

// Absorption axis parameters.
const (
	ParamFirstX = "FXV"
	ParamLastX  = "LXV"
	ParamPoints = "NPT"
)

// Column names of the exported table.
const (
	ColumnWavenumber   = "wavenumber"
	ColumnTransmission = "transmission"
)

// ParameterSource provides decoded parameter values by name.
//
// *block.ParameterBlock satisfies it.
type ParameterSource interface {
	Value(name string) (encoding.ParameterValue, bool)
}

// Absorption is an absorption spectrum: intensities paired with a regenerated
// wavenumber axis of the same length.
type Absorption struct {
	Wavenumber []float64
	Intensity  []float64
}

// Column is one named column of the exported table.
type Column struct {
	Name   string
	Values []float64
}

// Assemble builds the spectrum from the AB parameters and the AB values.
//
// FXV and LXV must be numeric (int or double). NPT must be integral and
// positive.
//
// Returns:
//   - Absorption: spectrum with len(Wavenumber) == len(Intensity) == NPT
//   - error: errs.ErrIncompleteAbsorption naming the missing or invalid key, or
//     errs.ErrPointCountMismatch (which also matches errs.ErrIncompleteAbsorption)
//     when NPT differs from len(values)
func Assemble(params ParameterSource, values []float32) (Absorption, error) {
	first, err := number(params, ParamFirstX)
	if err != nil {
		return Absorption{}, err
	}
	last, err := number(params, ParamLastX)
	if err != nil {
		return Absorption{}, err
	}

	npt, err := pointCount(params)
	if err != nil {
		return Absorption{}, err
	}
	if npt != len(values) {
		return Absorption{}, fmt.Errorf("%w: %w: %s=%d, AB holds %d values",
			errs.ErrIncompleteAbsorption, errs.ErrPointCountMismatch, ParamPoints, npt, len(values))
	}

	intensity := make([]float64, len(values))
	for i, v := range values {
		intensity[i] = float64(v)
	}

	return Absorption{
		Wavenumber: Linspace(first, last, npt),
		Intensity:  intensity,
	}, nil
}

func number(params ParameterSource, name string) (float64, error) {
	v, ok := params.Value(name)
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", errs.ErrIncompleteAbsorption, name)
	}

	n, ok := v.Number()
	if !ok {
		return 0, fmt.Errorf("%w: %s is not numeric (%s)", errs.ErrIncompleteAbsorption, name, v.Kind())
	}

	return n, nil
}

func pointCount(params ParameterSource) (int, error) {
	v, ok := params.Value(ParamPoints)
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", errs.ErrIncompleteAbsorption, ParamPoints)
	}

	n, ok := v.Count()
	if !ok {
		return 0, fmt.Errorf("%w: %s is not an integer (%s)", errs.ErrIncompleteAbsorption, ParamPoints, v)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %s=%d", errs.ErrIncompleteAbsorption, ParamPoints, n)
	}

	return n, nil
}

// Linspace returns n evenly spaced values from first to last inclusive.
//
// The final element is exactly last. A single point yields [first]; n <= 0
// yields an empty slice.
func Linspace(first, last float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}

	out := make([]float64, n)
	out[0] = first
	if n == 1 {
		return out
	}

	step := (last - first) / float64(n-1)
	for i := 1; i < n-1; i++ {
		out[i] = first + float64(i)*step
	}
	out[n-1] = last

	return out
}

// Len returns the number of points.
func (a Absorption) Len() int {
	return len(a.Intensity)
}

// FXV returns the upper end of the wavenumber axis.
func (a Absorption) FXV() float64 {
	if len(a.Wavenumber) == 0 {
		return 0
	}

	return slices.Max(a.Wavenumber)
}

// LXV returns the lower end of the wavenumber axis.
func (a Absorption) LXV() float64 {
	if len(a.Wavenumber) == 0 {
		return 0
	}

	return slices.Min(a.Wavenumber)
}

// Columns returns the spectrum as a two column table: the wavenumber axis and
// the transmission in percent (intensity * 100).
func (a Absorption) Columns() []Column {
	transmission := make([]float64, len(a.Intensity))
	for i, v := range a.Intensity {
		transmission[i] = v * 100
	}

	return []Column{
		{Name: ColumnWavenumber, Values: slices.Clone(a.Wavenumber)},
		{Name: ColumnTransmission, Values: transmission},
	}
}
