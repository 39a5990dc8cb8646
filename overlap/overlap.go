/*
 * overlap.go, part of chemlab.
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

//Package overlap provides the geometric overlap-detection primitive
//used when merging systems: finding which reference points lie within a
//cutoff of any query point, optionally under minimum-image periodic
//boundary conditions. The pair scan is brute force; it's really not
//thought for very large systems, where a cell-list implementation
//should be substituted through chem.OverlapDetector.
package overlap

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Points returns the ascending indices of the rows of ref that lie
//within cutoff of any row of query. Both matrices are Nx3 cartesian
//coordinates; either may be nil, yielding no overlaps. periodic is nil
//for a non-periodic search, or a 3-vector of orthorhombic box lengths
//for minimum-image wrapping.
func Points(query, ref *mat.Dense, cutoff float64, periodic []float64) ([]int, error) {
	if query == nil || ref == nil {
		return nil, nil
	}
	qn, qc := query.Dims()
	rn, rc := ref.Dims()
	if qc != 3 || rc != 3 {
		return nil, fmt.Errorf("overlap: coordinates must have 3 columns, got %d and %d", qc, rc)
	}
	if periodic != nil && len(periodic) != 3 {
		return nil, fmt.Errorf("overlap: periodic must be a 3-vector of box lengths, got length %d", len(periodic))
	}
	c2 := cutoff * cutoff
	d := make([]float64, 3)
	var out []int
	for j := 0; j < rn; j++ {
		for i := 0; i < qn; i++ {
			floats.SubTo(d, query.RawRowView(i), ref.RawRowView(j))
			if periodic != nil {
				for k := 0; k < 3; k++ {
					if periodic[k] > 0 {
						d[k] -= periodic[k] * math.Round(d[k]/periodic[k])
					}
				}
			}
			if floats.Dot(d, d) <= c2 {
				out = append(out, j)
				break
			}
		}
	}
	return out, nil
}
