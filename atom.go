/*
 * atom.go, part of chemlab.
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

import "gonum.org/v1/gonum/mat"

var atomSchema = &Schema{
	Dimension: "atom",
	Fields: map[string]Field{
		"r_array":      {DType: Float, Shape: []int{3}, Alias: "r"},
		"type_array":   {DType: String, Alias: "type"},
		"charge_array": {DType: Float},
	},
}

//Atom holds per-atom data along the atom dimension: coordinates
//(r_array, alias r), element symbols (type_array, alias type) and
//partial charges (charge_array). One instance can carry a single atom
//(MakeAtom) or a batch of many (MakeAtoms); the two construction paths
//are deliberately separate so the caller's intent is never inferred
//from array shapes.
type Atom struct {
	e *ChemicalEntity
}

//MakeAtom builds a single atom with the given element symbol and
//coordinates, and zero charge.
func MakeAtom(symbol string, r [3]float64) *Atom {
	e, err := emptyEntity(atomSchema, map[string]int{"atom": 1})
	if err != nil {
		panic("cant happen: " + err.Error())
	}
	//both can only fail on shape, and the shapes are fixed here
	e.Set("type_array", symbol)
	e.Set("r_array", r)
	return &Atom{e: e}
}

//MakeAtoms builds a batch of atoms from element symbols and an Nx3
//coordinate matrix. The matrix row count must match the number of
//symbols.
func MakeAtoms(symbols []string, coords *mat.Dense) (*Atom, error) {
	n := len(symbols)
	if coords != nil {
		r, c := coords.Dims()
		if r != n || c != 3 {
			return nil, errDecorate(shapeError("r_array", 3*n, r*c), "MakeAtoms")
		}
	} else if n != 0 {
		return nil, errDecorate(shapeError("r_array", 3*n, 0), "MakeAtoms")
	}
	e, err := emptyEntity(atomSchema, map[string]int{"atom": n})
	if err != nil {
		return nil, errDecorate(err, "MakeAtoms")
	}
	if err := e.Set("type_array", symbols); err != nil {
		return nil, errDecorate(err, "MakeAtoms")
	}
	if coords != nil {
		if err := e.Set("r_array", coords); err != nil {
			return nil, errDecorate(err, "MakeAtoms")
		}
	}
	return &Atom{e: e}, nil
}

//Entity exposes the underlying storage engine.
func (A *Atom) Entity() *ChemicalEntity {
	return A.e
}

//Len returns the number of atoms in the instance.
func (A *Atom) Len() int {
	return A.e.dims.N("atom")
}

//Coords returns the coordinates as an Nx3 matrix sharing storage with
//the instance, or nil for an empty batch.
func (A *Atom) Coords() *mat.Dense {
	c, _ := A.e.columnOf("r_array")
	return c.dense()
}

//Types returns the element symbols. The slice shares storage.
func (A *Atom) Types() []string {
	v, _ := A.e.Get("type_array")
	return v.([]string)
}

//Charges returns the partial charges. The slice shares storage.
func (A *Atom) Charges() []float64 {
	v, _ := A.e.Get("charge_array")
	return v.([]float64)
}

//SetCharges replaces the partial charges; the length must match the
//atom dimension.
func (A *Atom) SetCharges(q []float64) error {
	return errDecorate(A.e.Set("charge_array", q), "SetCharges")
}

//Get returns the property name (aliases allowed) as its flat slice.
func (A *Atom) Get(name string) (interface{}, error) {
	return A.e.Get(name)
}

//Set assigns the property name (aliases allowed) after shape
//validation.
func (A *Atom) Set(name string, value interface{}) error {
	return A.e.Set(name, value)
}
