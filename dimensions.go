/*
 * dimensions.go, part of chemlab.
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

import "sort"

//Dimensions tracks the named ordinal dimensions of one entity instance
//(atom, molecule, bond, system, ...) and their current sizes. It is the
//single source of truth for the expected leading-axis length of every
//array stored on the entity. Setting a size does not reshape arrays that
//are already stored; the ChemicalEntity methods keep both in lockstep.
type Dimensions struct {
	sizes map[string]int
}

func newDimensions() *Dimensions {
	return &Dimensions{sizes: make(map[string]int)}
}

//Set sets or overwrites the size of dimension dim. Negative sizes are
//rejected.
func (d *Dimensions) Set(dim string, n int) error {
	if n < 0 {
		return shapeError(dim, 0, n)
	}
	d.sizes[dim] = n
	return nil
}

//Get returns the size of dimension dim, or an UnknownDimensionError if
//it was never set.
func (d *Dimensions) Get(dim string) (int, error) {
	n, ok := d.sizes[dim]
	if !ok {
		return 0, unknownDimension(dim)
	}
	return n, nil
}

//N returns the size of dimension dim, or 0 if it was never set. It is
//the read-only convenience behind accessors such as System.NAtoms.
func (d *Dimensions) N(dim string) int {
	return d.sizes[dim]
}

//Has reports whether dim has been set.
func (d *Dimensions) Has(dim string) bool {
	_, ok := d.sizes[dim]
	return ok
}

//Names returns the sorted names of all set dimensions.
func (d *Dimensions) Names() []string {
	names := make([]string, 0, len(d.sizes))
	for k := range d.sizes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//Clone returns an independent copy of the registry.
func (d *Dimensions) Clone() *Dimensions {
	nd := newDimensions()
	for k, v := range d.sizes {
		nd.sizes[k] = v
	}
	return nd
}

func (d *Dimensions) equal(other *Dimensions) bool {
	if len(d.sizes) != len(other.sizes) {
		return false
	}
	for k, v := range d.sizes {
		if ov, ok := other.sizes[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
