/*
 * structural_test.go, part of chemlab.
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

func TestSubsystemFromMolecules(t *testing.T) {
	s := waterBox(t, 3)
	sub, err := SubsystemFromMolecules(s, NewSelection(0, 2))
	require.NoError(t, err)
	assert.Equal(t, 2, sub.NMol())
	assert.Equal(t, 6, sub.NAtoms())
	assert.Equal(t, []int{0, 3}, sub.MolIndices())
	//the second kept molecule is the original third one
	assert.InDelta(t, 20.0, sub.Coords().At(3, 0), 1e-12)
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, sub.Entity().Map("atom", "molecule").Values())
}

func TestSubsystemMaskSelection(t *testing.T) {
	s := waterBox(t, 3)
	sub, err := SubsystemFromMolecules(s, MaskSelection([]bool{true, false, true}))
	require.NoError(t, err)
	assert.Equal(t, 2, sub.NMol())

	_, err = SubsystemFromMolecules(s, MaskSelection([]bool{true, false}))
	var rng *RangeError
	require.True(t, errors.As(err, &rng))

	_, err = SubsystemFromMolecules(s, NewSelection(3))
	require.True(t, errors.As(err, &rng))
}

func TestSubsystemSelectionIsOrderFree(t *testing.T) {
	s := waterBox(t, 3)
	asc, err := SubsystemFromMolecules(s, NewSelection(0, 2))
	require.NoError(t, err)
	desc, err := SubsystemFromMolecules(s, NewSelection(2, 0))
	require.NoError(t, err)
	assert.True(t, desc.Equal(asc))
}

func TestSubSelectionIdempotence(t *testing.T) {
	s := waterBox(t, 4)
	sub, err := SubsystemFromMolecules(s, NewSelection(1, 3))
	require.NoError(t, err)
	again, err := SubsystemFromMolecules(sub, AllSelection(sub.NMol()))
	require.NoError(t, err)
	assert.True(t, again.Equal(sub))
}

func TestSubsystemFromAtomsSelectsWholeMolecules(t *testing.T) {
	s := waterBox(t, 3)
	//one hydrogen of the middle molecule pulls in the whole molecule
	sub, err := SubsystemFromAtoms(s, NewSelection(4))
	require.NoError(t, err)
	assert.Equal(t, 1, sub.NMol())
	assert.Equal(t, 3, sub.NAtoms())
	assert.InDelta(t, 10.0, sub.Coords().At(0, 0), 1e-12)

	//atoms from two molecules select both, whole
	sub, err = SubsystemFromAtoms(s, NewSelection(0, 8))
	require.NoError(t, err)
	assert.Equal(t, 2, sub.NMol())
	assert.Equal(t, 6, sub.NAtoms())
}

func TestSubSelectionReindexesBonds(t *testing.T) {
	mols := []*Molecule{waterMolecule(t, 0), waterMolecule(t, 1), waterMolecule(t, 2)}
	s, err := MakeSystem(mols)
	require.NoError(t, err)
	sub, err := SubsystemFromMolecules(s, NewSelection(2))
	require.NoError(t, err)
	assert.Equal(t, 2, sub.NBonds())
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}}, sub.Bonds())
	assert.Equal(t, []int{0, 0}, sub.Entity().Map("bond", "molecule").Values())
}

func TestMergeSizeLaw(t *testing.T) {
	a := waterBox(t, 2)
	b := waterBox(t, 1)
	res, err := MergeSystems(a, b, 0) //no overlap handling
	require.NoError(t, err)
	assert.Equal(t, a.NMol()+b.NMol(), res.NMol())
	assert.Equal(t, a.NAtoms()+b.NAtoms(), res.NAtoms())

	assert.Equal(t, append(append([]string{}, a.Types()...), b.Types()...), res.Types())
	assert.Equal(t, append(append([]string{}, a.MolNames()...), b.MolNames()...), res.MolNames())
	ra, _ := a.Get("r_array")
	rb, _ := b.Get("r_array")
	rres, _ := res.Get("r_array")
	assert.Equal(t, append(append([]float64{}, ra.([]float64)...), rb.([]float64)...), rres.([]float64))
	assert.Equal(t, []int{0, 3, 6}, res.MolIndices())
	assert.Equal(t, []int{3, 3, 3}, res.MolNAtoms())
}

func TestMergeWithOverlap(t *testing.T) {
	a := waterBox(t, 2)
	//one molecule placed exactly on top of a's first molecule
	b := waterBox(t, 1)
	res, err := MergeSystems(a, b, 0.2)
	require.NoError(t, err)
	//a's first molecule is removed whole
	assert.Equal(t, 2, res.NMol())
	assert.Equal(t, 6, res.NAtoms())
	//the survivor of a comes first, then b
	assert.InDelta(t, 10.0, res.Coords().At(0, 0), 1e-12)
	assert.InDelta(t, 0.0, res.Coords().At(3, 0), 1e-12)
}

func TestMergeStraddlingMoleculeRemovedWhole(t *testing.T) {
	//a molecule with only one atom inside the cutoff is still removed whole
	a, err := FromArrays(map[string]interface{}{
		"type_array":  []string{"C", "C"},
		"mol_indices": []int{0},
		"r_array":     []float64{0, 0, 0, 5, 0, 0},
	})
	require.NoError(t, err)
	b, err := FromArrays(map[string]interface{}{
		"type_array":  []string{"X"},
		"mol_indices": []int{0},
		"r_array":     []float64{0, 0, 0},
	})
	require.NoError(t, err)
	res, err := MergeSystems(a, b, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 1, res.NMol())
	assert.Equal(t, []string{"X"}, res.Types())
}

func TestMergeCopiesBox(t *testing.T) {
	a := waterBox(t, 1)
	a.BoxVectors = mat.NewDense(3, 3, []float64{30, 0, 0, 0, 30, 0, 0, 0, 30})
	b := waterBox(t, 1)
	res, err := MergeSystems(a, b, 0)
	require.NoError(t, err)
	require.NotNil(t, res.BoxVectors)
	assert.Equal(t, 30.0, res.BoxVectors.At(1, 1))
	//a copy, not an alias
	res.BoxVectors.Set(0, 0, 7)
	assert.Equal(t, 30.0, a.BoxVectors.At(0, 0))
}

func TestMergeReindexesBonds(t *testing.T) {
	a, err := MakeSystem([]*Molecule{waterMolecule(t, 0)})
	require.NoError(t, err)
	b, err := MakeSystem([]*Molecule{waterMolecule(t, 5)})
	require.NoError(t, err)
	res, err := MergeSystems(a, b, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, res.NBonds())
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {3, 4}, {3, 5}}, res.Bonds())
	assert.Equal(t, []int{0, 0, 1, 1}, res.Entity().Map("bond", "molecule").Values())
}

func TestAddMolecule(t *testing.T) {
	s := waterBox(t, 2)
	require.NoError(t, s.Add(waterMolecule(t, 7)))
	assert.Equal(t, 3, s.NMol())
	assert.Equal(t, 9, s.NAtoms())
	assert.Equal(t, 2, s.NBonds())
	assert.InDelta(t, 70.0, s.Coords().At(6, 0), 1e-12)
	assert.Equal(t, []int{0, 3, 6}, s.MolIndices())
}

func TestMergeResultIndependent(t *testing.T) {
	a := waterBox(t, 1)
	b := waterBox(t, 1)
	res, err := MergeSystems(a, b, 0)
	require.NoError(t, err)
	res.Coords().Set(0, 0, 99)
	assert.InDelta(t, 0.0, a.Coords().At(0, 0), 1e-12)
}

func TestWhereUnknownDimension(t *testing.T) {
	s := waterBox(t, 1)
	_, err := s.Where("residue", NewSelection(0))
	var unknown *UnknownDimensionError
	require.True(t, errors.As(err, &unknown))
}
