/*
 * select.go, part of chemlab.
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

import "github.com/RoaringBitmap/roaring/v2"

//Selection is an ordered ascending set of indices along one dimension,
//built either from explicit indices or from a boolean mask. It is the
//argument of the sub-selection operations (SubDimension, Where,
//SubsystemFromMolecules, SubsystemFromAtoms).
type Selection struct {
	bm *roaring.Bitmap
	//length of the originating mask, or -1 when built from indices; a
	//mask must match the selected dimension's size exactly.
	maskLen int
}

//NewSelection builds a Selection from explicit indices. Duplicates
//collapse. Panics on a negative index, which is a programming error.
func NewSelection(indices ...int) Selection {
	bm := roaring.New()
	for _, i := range indices {
		if i < 0 {
			panic("chem: negative index in selection")
		}
		bm.Add(uint32(i))
	}
	return Selection{bm: bm, maskLen: -1}
}

//MaskSelection builds a Selection from a boolean mask: index i is
//selected when mask[i] is true. The mask length is validated against
//the dimension size at the point of use.
func MaskSelection(mask []bool) Selection {
	bm := roaring.New()
	for i, keep := range mask {
		if keep {
			bm.Add(uint32(i))
		}
	}
	return Selection{bm: bm, maskLen: len(mask)}
}

//AllSelection selects every index in [0, n).
func AllSelection(n int) Selection {
	bm := roaring.New()
	if n > 0 {
		bm.AddRange(0, uint64(n))
	}
	return Selection{bm: bm, maskLen: -1}
}

//Len returns the number of selected indices.
func (s Selection) Len() int {
	if s.bm == nil {
		return 0
	}
	return int(s.bm.GetCardinality())
}

//Contains reports whether index i is selected.
func (s Selection) Contains(i int) bool {
	if s.bm == nil || i < 0 {
		return false
	}
	return s.bm.Contains(uint32(i))
}

//Indices returns the selected indices in ascending order.
func (s Selection) Indices() []int {
	if s.bm == nil {
		return nil
	}
	out := make([]int, 0, s.Len())
	it := s.bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

//validate checks the selection against a dimension of size n: a
//mask-built selection must come from a mask of length exactly n, and
//every selected index must be within range.
func (s Selection) validate(dim string, n int) error {
	if s.maskLen >= 0 && s.maskLen != n {
		return maskLenError(dim, s.maskLen, n)
	}
	if s.bm != nil && !s.bm.IsEmpty() {
		if max := int(s.bm.Maximum()); max >= n {
			return rangeError(dim, max, n)
		}
	}
	return nil
}
