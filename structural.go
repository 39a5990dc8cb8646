/*
 * structural.go, part of chemlab.
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
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/queenmarie/chemlab/overlap"
)

//OverlapFunc is the geometric overlap-detection primitive consumed by
//MergeSystems: it returns the indices of ref points lying within cutoff
//of any query point. periodic is nil for a non-periodic search, or a
//3-vector of box lengths for minimum-image wrapping.
type OverlapFunc func(query, ref *mat.Dense, cutoff float64, periodic []float64) ([]int, error)

//OverlapDetector is the overlap primitive used by MergeSystems. It
//defaults to the brute-force overlap.Points; callers with large systems
//can substitute a cell-list implementation.
var OverlapDetector OverlapFunc = overlap.Points

//SubsystemFromMolecules creates a system from orig by picking the
//molecules in sel, which is either a list of molecule indices or a
//boolean mask over the molecule dimension. A Selection is a set, so the
//result always keeps the original's molecule order, whatever order the
//indices were given in.
func SubsystemFromMolecules(orig *System, sel Selection) (*System, error) {
	sub, err := orig.Where("molecule", sel)
	if err != nil {
		return nil, errDecorate(err, "SubsystemFromMolecules")
	}
	return sub, nil
}

//SubsystemFromAtoms creates a system containing the atoms in sel. An
//atom never splits its molecule: every molecule owning at least one
//selected atom is included whole, and the result keeps the original's
//molecule order regardless of the order of the selected indices. sel is
//either a list of atom indices or a boolean mask over the atom
//dimension; a mask is the usual way to select on positions, e.g.
//keeping the part of a system with x > 1.0:
//
//	coords := s.Coords()
//	mask := make([]bool, s.NAtoms())
//	for i := range mask {
//	        mask[i] = coords.At(i, 0) > 1.0
//	}
//	subs, err := chem.SubsystemFromAtoms(s, chem.MaskSelection(mask))
func SubsystemFromAtoms(orig *System, sel Selection) (*System, error) {
	sub, err := orig.Where("atom", sel)
	if err != nil {
		return nil, errDecorate(err, "SubsystemFromAtoms")
	}
	return sub, nil
}

//MergeSystems generates a system by merging sysa and sysb. Molecules of
//sysa with atoms within bounding of any sysb atom are removed whole (a
//molecule straddling the cutoff is fully removed, not split), making
//space for sysb; the periodicity for the overlap search is taken from
//the diagonal of sysa's box vectors, if any. A bounding <= 0 (or NaN)
//disables overlap handling. The result takes sysa's box vectors
//unchanged; that sysb fits inside them is the caller's responsibility.
func MergeSystems(sysa, sysb *System, bounding float64) (*System, error) {
	if bounding > 0 && !math.IsNaN(bounding) && sysa.NAtoms() > 0 && sysb.NAtoms() > 0 {
		var periodic []float64
		if sysa.BoxVectors != nil {
			periodic = []float64{sysa.BoxVectors.At(0, 0), sysa.BoxVectors.At(1, 1), sysa.BoxVectors.At(2, 2)}
		}
		p, err := OverlapDetector(sysb.Coords(), sysa.Coords(), bounding, periodic)
		if err != nil {
			return nil, err
		}
		if len(p) > 0 {
			owners := sysa.e.maps[mapKey{"atom", "molecule"}].values
			keep := make([]bool, sysa.NMol())
			for i := range keep {
				keep[i] = true
			}
			for _, a := range p {
				keep[owners[a]] = false
			}
			var kept []int
			for i, k := range keep {
				if k {
					kept = append(kept, i)
				}
			}
			sysa, err = SubsystemFromMolecules(sysa, NewSelection(kept...))
			if err != nil {
				return nil, err
			}
		}
	}
	res, err := EmptySystem(sysa.NMol()+sysb.NMol(), sysa.NAtoms()+sysb.NAtoms())
	if err != nil {
		return nil, err
	}
	for name, attr := range systemSchema.Attributes {
		values, err := attr.Concatenate(name, sysa.e, sysb.e)
		if err != nil {
			return nil, err
		}
		if err := attr.Assign(res.e, name, values); err != nil {
			return nil, err
		}
	}
	if err := concatBonds(res, sysa, sysb); err != nil {
		return nil, err
	}
	//sysb's owning maps shift by sysa's molecule count; the atom-order
	//boundaries (MolIndices, MolNAtoms) follow from the merged map.
	for _, key := range systemSchema.Maps {
		ma := sysa.e.maps[key]
		mb := sysb.e.maps[key].clone()
		mb.Offset(sysa.NMol())
		vals := make([]int, 0, len(ma.values)+len(mb.values))
		vals = append(vals, ma.values...)
		vals = append(vals, mb.values...)
		res.e.maps[key] = &InstanceRelation{dim: key.dim, target: key.target, values: vals}
	}
	cell, err := sysa.e.columnOf("cell_lengths")
	if err != nil {
		return nil, err
	}
	res.e.store["cell_lengths"] = cell.clone()
	if sysa.BoxVectors != nil {
		res.BoxVectors = mat.DenseCopyOf(sysa.BoxVectors)
	}
	return res, nil
}

//concatBonds stores on res the bonds of sysa followed by the bonds of
//sysb re-based past sysa's atoms.
func concatBonds(res, sysa, sysb *System) error {
	ca, err := sysa.e.columnOf("bonds")
	if err != nil {
		return err
	}
	cb, err := sysb.e.columnOf("bonds")
	if err != nil {
		return err
	}
	shifted := cb.clone()
	for i := range shifted.i {
		shifted.i[i] += sysa.NAtoms()
	}
	merged, err := concatColumns(ca, shifted)
	if err != nil {
		return err
	}
	if err := res.e.dims.Set("bond", merged.leadLen()); err != nil {
		return err
	}
	res.e.store["bonds"] = merged
	return nil
}

//Add appends one molecule to the system in place, growing the molecule,
//atom and bond dimensions and every dependent array and map.
func (S *System) Add(mol *Molecule) error {
	single, err := MakeSystem([]*Molecule{mol})
	if err != nil {
		return errDecorate(err, "Add")
	}
	merged, err := MergeSystems(S, single, 0)
	if err != nil {
		return errDecorate(err, "Add")
	}
	S.e = merged.e
	return nil
}
