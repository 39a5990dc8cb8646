/*
 * system_test.go, part of chemlab.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

//waterCoords returns the coordinates of n rigid waters, molecule i
//shifted by 10i along x so the molecules are well separated.
func waterCoords(n int) *mat.Dense {
	m := mat.NewDense(3*n, 3, nil)
	for i := 0; i < n; i++ {
		x := float64(10 * i)
		m.SetRow(3*i, []float64{x, 0, 0})           //O
		m.SetRow(3*i+1, []float64{x + 0.7, 0.7, 0}) //H
		m.SetRow(3*i+2, []float64{x - 0.7, 0.7, 0}) //H
	}
	return m
}

func waterTypes(n int) []string {
	out := make([]string, 0, 3*n)
	for i := 0; i < n; i++ {
		out = append(out, "O", "H", "H")
	}
	return out
}

//waterBox builds a system of n well-separated waters through the bulk
//FromArrays path.
func waterBox(t *testing.T, n int) *System {
	t.Helper()
	indices := make([]int, n)
	names := make([]string, n)
	for i := range indices {
		indices[i] = 3 * i
		names[i] = "WAT"
	}
	s, err := FromArrays(map[string]interface{}{
		"type_array":    waterTypes(n),
		"mol_indices":   indices,
		"r_array":       waterCoords(n),
		"molecule_name": names,
	})
	require.NoError(t, err)
	return s
}

//waterMolecule builds one water shifted by 10*shift along x through the
//per-atom assembly path, with its two O-H bonds.
func waterMolecule(t *testing.T, shift int) *Molecule {
	t.Helper()
	x := float64(10 * shift)
	m, err := MakeMolecule([]*Atom{
		MakeAtom("O", [3]float64{x, 0, 0}),
		MakeAtom("H", [3]float64{x + 0.7, 0.7, 0}),
		MakeAtom("H", [3]float64{x - 0.7, 0.7, 0}),
	})
	require.NoError(t, err)
	require.NoError(t, m.SetName("WAT"))
	require.NoError(t, m.SetBonds([][2]int{{0, 1}, {0, 2}}))
	return m
}

func TestMoleculeAssembly(t *testing.T) {
	m := waterMolecule(t, 0)
	assert.Equal(t, 3, m.NAtoms())
	assert.Equal(t, 2, m.NBonds())
	assert.Equal(t, []string{"O", "H", "H"}, m.Types())
	assert.Equal(t, "WAT", m.Name())
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}}, m.Bonds())
	assert.InDelta(t, 0.7, m.Coords().At(1, 0), 1e-12)
}

func TestMoleculeBondsOutOfRange(t *testing.T) {
	m := waterMolecule(t, 0)
	err := m.SetBonds([][2]int{{0, 3}})
	var rng *RangeError
	require.True(t, errors.As(err, &rng))
	assert.Equal(t, 2, m.NBonds()) //untouched
}

func TestMoleculeExportOpaque(t *testing.T) {
	m := waterMolecule(t, 0)
	assert.Nil(t, m.Export())
	payload := map[string]int{"resid": 42}
	require.NoError(t, m.SetExport(payload))
	assert.Equal(t, payload, m.Export())
}

func TestMoleculeEqualOpaqueExport(t *testing.T) {
	a := waterMolecule(t, 0)
	b := waterMolecule(t, 0)
	//uncomparable payloads must compare by content, not panic
	require.NoError(t, a.SetExport(map[string]int{"resid": 42}))
	require.NoError(t, b.SetExport(map[string]int{"resid": 42}))
	assert.True(t, a.Equal(b))

	require.NoError(t, b.SetExport(map[string]int{"resid": 7}))
	assert.False(t, a.Equal(b))

	require.NoError(t, b.SetExport([]string{"a", "b"}))
	assert.False(t, a.Equal(b))
}

func TestSystemFromMolecules(t *testing.T) {
	mols := []*Molecule{waterMolecule(t, 0), waterMolecule(t, 1), waterMolecule(t, 2)}
	s, err := MakeSystem(mols)
	require.NoError(t, err)
	assert.Equal(t, 3, s.NMol())
	assert.Equal(t, 9, s.NAtoms())
	assert.Equal(t, 6, s.NBonds())
	assert.Equal(t, waterTypes(3), s.Types())
	assert.Equal(t, []string{"WAT", "WAT", "WAT"}, s.MolNames())
	//bond atom indices re-based into the global atom numbering
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {3, 4}, {3, 5}, {6, 7}, {6, 8}}, s.Bonds())
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1, 2, 2, 2}, s.Entity().Map("atom", "molecule").Values())
}

func TestGetMoleculeRoundTrip(t *testing.T) {
	mols := []*Molecule{waterMolecule(t, 0), waterMolecule(t, 1), waterMolecule(t, 2)}
	s, err := MakeSystem(mols)
	require.NoError(t, err)
	for i, orig := range mols {
		got, err := s.GetMolecule(i)
		require.NoError(t, err)
		assert.True(t, got.Equal(orig), "molecule %d", i)
	}
	_, err = s.GetMolecule(3)
	var rng *RangeError
	require.True(t, errors.As(err, &rng))
}

func TestBoundaryDerivation(t *testing.T) {
	s := waterBox(t, 3)
	assert.Equal(t, []int{0, 3, 6}, s.MolIndices())
	assert.Equal(t, []int{3, 3, 3}, s.MolNAtoms())

	uneven, err := FromArrays(map[string]interface{}{
		"type_array":  []string{"N", "H", "C", "O", "O", "H", "H"},
		"mol_indices": []int{0, 2, 5},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 5}, uneven.MolIndices())
	assert.Equal(t, []int{2, 3, 2}, uneven.MolNAtoms())
}

func TestFromArraysRequiredArguments(t *testing.T) {
	var missing *MissingArgumentError

	_, err := FromArrays(map[string]interface{}{"type_array": waterTypes(1)})
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "mol_indices", missing.Arg)

	_, err = FromArrays(map[string]interface{}{"mol_indices": []int{0}})
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "type_array", missing.Arg)
}

func TestFromArraysValidation(t *testing.T) {
	//descending boundaries
	_, err := FromArrays(map[string]interface{}{
		"type_array":  waterTypes(2),
		"mol_indices": []int{3, 0},
	})
	assert.Error(t, err)

	//misshapen extra array fails fast through the schema-checked Set
	_, err = FromArrays(map[string]interface{}{
		"type_array":  waterTypes(1),
		"mol_indices": []int{0},
		"r_array":     []float64{1, 2},
	})
	var shape *ShapeError
	require.True(t, errors.As(err, &shape))

	//unknown keys are rejected, not silently set
	_, err = FromArrays(map[string]interface{}{
		"type_array":  waterTypes(1),
		"mol_indices": []int{0},
		"spin_array":  []float64{0, 0, 0},
	})
	var unknown *UnknownPropertyError
	require.True(t, errors.As(err, &unknown))

	//atoms with no molecule boundaries would leave every atom unowned
	_, err = FromArrays(map[string]interface{}{
		"type_array":  waterTypes(1),
		"mol_indices": []int{},
	})
	require.True(t, errors.As(err, &shape))

	//a fully empty system is still fine
	empty, err := FromArrays(map[string]interface{}{
		"type_array":  []string{},
		"mol_indices": []int{},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.NMol())
	assert.Equal(t, 0, empty.NAtoms())
}

func TestFromArraysBonds(t *testing.T) {
	s, err := FromArrays(map[string]interface{}{
		"type_array":  waterTypes(1),
		"mol_indices": []int{0},
		"bonds":       [][2]int{{0, 1}, {0, 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, s.NBonds())
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}}, s.Bonds())
}

func TestGenerators(t *testing.T) {
	s := waterBox(t, 3)

	mols, err := s.Molecules().Slice(0, s.NMol())
	require.NoError(t, err)
	require.Len(t, mols, 3)
	assert.InDelta(t, 20.0, mols[2].Coords().At(0, 0), 1e-12)

	one, err := s.Molecules().Get(1)
	require.NoError(t, err)
	assert.Equal(t, 3, one.NAtoms())

	at, err := s.Atoms().Get(4)
	require.NoError(t, err)
	assert.Equal(t, []string{"H"}, at.Types())
	assert.InDelta(t, 10.7, at.Coords().At(0, 0), 1e-12)

	//out-of-range slices clamp like the bounds of the dimension
	none, err := s.Atoms().Slice(20, 30)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCellLengths(t *testing.T) {
	s := waterBox(t, 1)
	require.NoError(t, s.SetCellLengths([]float64{30, 30, 30}))
	assert.Equal(t, []float64{30, 30, 30}, s.CellLengths())
	assert.Error(t, s.SetCellLengths([]float64{30, 30}))
}
