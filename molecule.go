/*
 * molecule.go, part of chemlab.
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

var moleculeSchema = &Schema{
	Dimension: "molecule",
	Fields: map[string]Field{
		"molecule_name": {DType: String, Alias: "name"},
		"export":        {DType: Object},
	},
	Attributes: map[string]Attribute{
		"r_array":      {DType: Float, Shape: []int{3}, Dim: "atom", Alias: "r"},
		"type_array":   {DType: String, Dim: "atom", Alias: "type"},
		"charge_array": {DType: Float, Dim: "atom"},
	},
	Relations: map[string]Relation{
		"bonds": {Dim: "bond", Map: "atom", Shape: []int{2}},
	},
	Maps: []mapKey{{"atom", "molecule"}, {"bond", "molecule"}},
}

//Molecule is a single molecule: the aggregation of its atoms' fields
//along the atom dimension, an optional bonds relation (pairs of local
//atom indices along the bond dimension) and free-form export metadata.
type Molecule struct {
	e *ChemicalEntity
}

//MakeMolecule assembles a molecule from atoms, concatenating their
//coordinate, type and charge arrays in order.
func MakeMolecule(atoms []*Atom) (*Molecule, error) {
	e := newEntity(moleculeSchema)
	subs := make([]*ChemicalEntity, len(atoms))
	for i, a := range atoms {
		subs[i] = a.e
	}
	if err := e.fromEntities(subs, "atom"); err != nil {
		return nil, errDecorate(err, "MakeMolecule")
	}
	return &Molecule{e: e}, nil
}

//Entity exposes the underlying storage engine.
func (M *Molecule) Entity() *ChemicalEntity {
	return M.e
}

//NAtoms returns the number of atoms in the molecule.
func (M *Molecule) NAtoms() int {
	return M.e.dims.N("atom")
}

//NBonds returns the number of bonds.
func (M *Molecule) NBonds() int {
	return M.e.dims.N("bond")
}

//Name returns the molecule name.
func (M *Molecule) Name() string {
	v, _ := M.e.Get("molecule_name")
	return v.([]string)[0]
}

//SetName sets the molecule name.
func (M *Molecule) SetName(name string) error {
	return errDecorate(M.e.Set("molecule_name", name), "SetName")
}

//Export returns the opaque export payload, or nil if none was set.
func (M *Molecule) Export() interface{} {
	v, _ := M.e.Get("export")
	return v.([]interface{})[0]
}

//SetExport stores an opaque export payload. The payload is never
//shape-validated.
func (M *Molecule) SetExport(payload interface{}) error {
	return errDecorate(M.e.Set("export", payload), "SetExport")
}

//Bonds returns the bonds as pairs of local atom indices. The returned
//slice is an independent copy.
func (M *Molecule) Bonds() [][2]int {
	return bondPairs(M.e)
}

//SetBonds replaces the bonds, resizing the bond dimension. Atom indices
//out of range are a RangeError.
func (M *Molecule) SetBonds(pairs [][2]int) error {
	return errDecorate(M.e.setBonds(pairs), "SetBonds")
}

//Coords returns the molecule's coordinates as an Nx3 matrix sharing
//storage, or nil if the molecule has no atoms.
func (M *Molecule) Coords() *mat.Dense {
	c, _ := M.e.columnOf("r_array")
	return c.dense()
}

//Types returns the element symbols. The slice shares storage.
func (M *Molecule) Types() []string {
	v, _ := M.e.Get("type_array")
	return v.([]string)
}

//Charges returns the partial charges. The slice shares storage.
func (M *Molecule) Charges() []float64 {
	v, _ := M.e.Get("charge_array")
	return v.([]float64)
}

//Get returns the property name (aliases allowed) as its flat slice.
func (M *Molecule) Get(name string) (interface{}, error) {
	return M.e.Get(name)
}

//Set assigns the property name (aliases allowed) after shape
//validation.
func (M *Molecule) Set(name string, value interface{}) error {
	return M.e.Set(name, value)
}

//Equal reports element-wise equality of every stored property.
func (M *Molecule) Equal(other *Molecule) bool {
	return other != nil && M.e.Equal(other.e)
}

func bondPairs(e *ChemicalEntity) [][2]int {
	c, err := e.columnOf("bonds")
	if err != nil {
		return nil
	}
	n := c.leadLen()
	out := make([][2]int, n)
	for i := 0; i < n; i++ {
		out[i] = [2]int{c.i[2*i], c.i[2*i+1]}
	}
	return out
}
