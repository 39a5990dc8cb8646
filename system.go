/*
 * system.go, part of chemlab.
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

var systemSchema = &Schema{
	Dimension: "system",
	Fields: map[string]Field{
		"cell_lengths": {DType: Float, Shape: []int{3}},
	},
	Attributes: map[string]Attribute{
		"r_array":       {DType: Float, Shape: []int{3}, Dim: "atom", Alias: "r"},
		"type_array":    {DType: String, Dim: "atom", Alias: "type"},
		"charge_array":  {DType: Float, Dim: "atom"},
		"molecule_name": {DType: String, Dim: "molecule"},
	},
	Relations: map[string]Relation{
		"bonds": {Dim: "bond", Map: "atom", Shape: []int{2}},
	},
	Maps: []mapKey{{"atom", "molecule"}, {"bond", "molecule"}},
}

//System is an aggregate of molecules: per-atom arrays are the ordered
//concatenation of the constituent molecules' arrays, with atoms of the
//same molecule contiguous, and the (atom, molecule) owning map records
//the boundaries. BoxVectors is the periodic box as a 3x3 matrix (the
//library only ever reads its diagonal), or nil for a non-periodic
//system.
type System struct {
	e          *ChemicalEntity
	BoxVectors *mat.Dense
}

//MakeSystem assembles a system from molecules.
func MakeSystem(molecules []*Molecule) (*System, error) {
	e := newEntity(systemSchema)
	subs := make([]*ChemicalEntity, len(molecules))
	for i, m := range molecules {
		subs[i] = m.e
	}
	if err := e.fromEntities(subs, "molecule"); err != nil {
		return nil, errDecorate(err, "MakeSystem")
	}
	return &System{e: e}, nil
}

//EmptySystem allocates a zero-filled system with the given molecule and
//atom dimension sizes and no bonds.
func EmptySystem(nmol, natoms int) (*System, error) {
	e, err := emptyEntity(systemSchema, map[string]int{"molecule": nmol, "atom": natoms})
	if err != nil {
		return nil, errDecorate(err, "EmptySystem")
	}
	return &System{e: e}, nil
}

//FromArrays initializes a System directly from its constituent arrays,
//bypassing per-molecule assembly. It is the fastest construction path,
//suited to readers loading big systems from data files.
//
//Required keys: "type_array" ([]string) and "mol_indices" ([]int, the
//ascending start offsets of each molecule within the flattened atom
//arrays; the last molecule runs to the end, and the list must be
//non-empty whenever there are atoms). Any other key is assigned
//through the schema-validated Set, so r_array, charge_array,
//molecule_name, cell_lengths and bonds ([][2]int) are all accepted.
//
//The classic three-water example:
//
//	System.FromArrays(map[string]interface{}{
//	        "r_array":     coords, // 9x3
//	        "type_array":  []string{"O", "H", "H", "O", "H", "H", "O", "H", "H"},
//	        "mol_indices": []int{0, 3, 6},
//	})
func FromArrays(args map[string]interface{}) (*System, error) {
	rawIdx, ok := args["mol_indices"]
	if !ok {
		return nil, errDecorate(missingArgument("mol_indices"), "FromArrays")
	}
	rawTypes, ok := args["type_array"]
	if !ok {
		return nil, errDecorate(missingArgument("type_array"), "FromArrays")
	}
	molIndices, ok := rawIdx.([]int)
	if !ok {
		return nil, errDecorate(shapeError("mol_indices", 0, -1), "FromArrays")
	}
	types, ok := rawTypes.([]string)
	if !ok {
		return nil, errDecorate(shapeError("type_array", 0, -1), "FromArrays")
	}
	natoms := len(types)
	nmol := len(molIndices)
	if nmol == 0 && natoms > 0 {
		//every atom must belong to a molecule
		return nil, errDecorate(shapeError("mol_indices", 1, 0), "FromArrays")
	}
	for i, start := range molIndices {
		prev := 0
		if i > 0 {
			prev = molIndices[i-1]
		}
		if start < prev || start > natoms || (i == 0 && start != 0) {
			return nil, errDecorate(rangeError("atom", start, natoms), "FromArrays")
		}
	}
	s, err := EmptySystem(nmol, natoms)
	if err != nil {
		return nil, errDecorate(err, "FromArrays")
	}
	vals := make([]int, 0, natoms)
	for i := 0; i < nmol; i++ {
		end := natoms
		if i < nmol-1 {
			end = molIndices[i+1]
		}
		for k := molIndices[i]; k < end; k++ {
			vals = append(vals, i)
		}
	}
	s.e.maps[mapKey{"atom", "molecule"}].values = vals
	if err := s.e.Set("type_array", types); err != nil {
		return nil, errDecorate(err, "FromArrays")
	}
	for name, value := range args {
		if name == "mol_indices" || name == "type_array" {
			continue
		}
		if name == "bonds" {
			pairs, ok := value.([][2]int)
			if !ok {
				return nil, errDecorate(shapeError("bonds", 0, -1), "FromArrays")
			}
			if err := s.e.setBonds(pairs); err != nil {
				return nil, errDecorate(err, "FromArrays")
			}
			continue
		}
		if err := s.e.Set(name, value); err != nil {
			return nil, errDecorate(err, "FromArrays")
		}
	}
	return s, nil
}

//Entity exposes the underlying storage engine.
func (S *System) Entity() *ChemicalEntity {
	return S.e
}

//NMol returns the number of molecules.
func (S *System) NMol() int {
	return S.e.dims.N("molecule")
}

//NAtoms returns the number of atoms.
func (S *System) NAtoms() int {
	return S.e.dims.N("atom")
}

//NBonds returns the number of bonds.
func (S *System) NBonds() int {
	return S.e.dims.N("bond")
}

//MolIndices returns the start offset of each molecule in atom order,
//derived from the first differences of the (atom, molecule) owning map.
func (S *System) MolIndices() []int {
	m := S.e.maps[mapKey{"atom", "molecule"}].values
	var out []int
	for i, v := range m {
		if i == 0 || v != m[i-1] {
			out = append(out, i)
		}
	}
	return out
}

//MolNAtoms returns the per-molecule atom counts, derived from
//MolIndices.
func (S *System) MolNAtoms() []int {
	idx := append(S.MolIndices(), S.NAtoms())
	out := make([]int, 0, len(idx)-1)
	for i := 1; i < len(idx); i++ {
		out = append(out, idx[i]-idx[i-1])
	}
	return out
}

//GetMolecule extracts molecule index as a new, independent Molecule.
func (S *System) GetMolecule(index int) (*Molecule, error) {
	sub, err := S.e.Subentity(moleculeSchema, index)
	if err != nil {
		return nil, errDecorate(err, "GetMolecule")
	}
	return &Molecule{e: sub}, nil
}

//GetAtom extracts atom index as a new, independent single-atom Atom.
func (S *System) GetAtom(index int) (*Atom, error) {
	n := S.NAtoms()
	if index < 0 || index >= n {
		return nil, errDecorate(rangeError("atom", index, n), "GetAtom")
	}
	e, err := emptyEntity(atomSchema, map[string]int{"atom": 1})
	if err != nil {
		return nil, errDecorate(err, "GetAtom")
	}
	for _, name := range []string{"r_array", "type_array", "charge_array"} {
		src, err := S.e.columnOf(name)
		if err != nil {
			return nil, errDecorate(err, "GetAtom")
		}
		e.store[name] = src.slice([]int{index})
	}
	return &Atom{e: e}, nil
}

//Molecules returns a lazy, index-based view over the system's
//molecules. Sub-entities are constructed on demand, not cached.
func (S *System) Molecules() *MoleculeGenerator {
	return &MoleculeGenerator{system: S}
}

//Atoms returns a lazy, index-based view over the system's atoms.
func (S *System) Atoms() *AtomGenerator {
	return &AtomGenerator{system: S}
}

//Where returns the subsystem selected along dim: "molecule" selects
//molecules directly; "atom" selects every molecule owning at least one
//selected atom (an atom never splits its molecule). Any other dimension
//is an UnknownDimensionError.
func (S *System) Where(dim string, sel Selection) (*System, error) {
	switch dim {
	case "molecule":
		sub, err := S.e.SubDimension(sel, "molecule")
		if err != nil {
			return nil, errDecorate(err, "Where")
		}
		return S.wrap(sub), nil
	case "atom":
		if err := sel.validate("atom", S.NAtoms()); err != nil {
			return nil, errDecorate(err, "Where")
		}
		owners := S.e.maps[mapKey{"atom", "molecule"}].values
		mols := make([]int, 0, sel.Len())
		for _, a := range sel.Indices() {
			mols = append(mols, owners[a])
		}
		return S.Where("molecule", NewSelection(mols...))
	}
	return nil, errDecorate(unknownDimension(dim), "Where")
}

func (S *System) wrap(e *ChemicalEntity) *System {
	out := &System{e: e}
	if S.BoxVectors != nil {
		out.BoxVectors = mat.DenseCopyOf(S.BoxVectors)
	}
	return out
}

//Coords returns the system's coordinates as an Nx3 matrix sharing
//storage, or nil for a system with no atoms.
func (S *System) Coords() *mat.Dense {
	c, _ := S.e.columnOf("r_array")
	return c.dense()
}

//SetCoords replaces the coordinates; the row count must match the atom
//dimension.
func (S *System) SetCoords(coords *mat.Dense) error {
	return errDecorate(S.e.Set("r_array", coords), "SetCoords")
}

//Types returns the element symbols. The slice shares storage.
func (S *System) Types() []string {
	v, _ := S.e.Get("type_array")
	return v.([]string)
}

//Charges returns the partial charges. The slice shares storage.
func (S *System) Charges() []float64 {
	v, _ := S.e.Get("charge_array")
	return v.([]float64)
}

//MolNames returns the per-molecule names. The slice shares storage.
func (S *System) MolNames() []string {
	v, _ := S.e.Get("molecule_name")
	return v.([]string)
}

//Bonds returns the bonds as pairs of global atom indices. The returned
//slice is an independent copy.
func (S *System) Bonds() [][2]int {
	return bondPairs(S.e)
}

//SetBonds replaces the bonds, resizing the bond dimension.
func (S *System) SetBonds(pairs [][2]int) error {
	return errDecorate(S.e.setBonds(pairs), "SetBonds")
}

//CellLengths returns the orthorhombic cell lengths. The slice shares
//storage.
func (S *System) CellLengths() []float64 {
	v, _ := S.e.Get("cell_lengths")
	return v.([]float64)
}

//SetCellLengths sets the orthorhombic cell lengths (a 3-vector).
func (S *System) SetCellLengths(lengths []float64) error {
	return errDecorate(S.e.Set("cell_lengths", lengths), "SetCellLengths")
}

//Get returns the property name (aliases allowed) as its flat slice.
func (S *System) Get(name string) (interface{}, error) {
	return S.e.Get(name)
}

//Set assigns the property name (aliases allowed) after shape
//validation.
func (S *System) Set(name string, value interface{}) error {
	return S.e.Set(name, value)
}

//Equal reports element-wise equality of every stored property and the
//dimension sizes. Box vectors are not part of the schema and are not
//compared.
func (S *System) Equal(other *System) bool {
	return other != nil && S.e.Equal(other.e)
}

//MoleculeGenerator is a lazy view producing molecules on demand.
type MoleculeGenerator struct {
	system *System
}

//Get returns molecule i.
func (g *MoleculeGenerator) Get(i int) (*Molecule, error) {
	return g.system.GetMolecule(i)
}

//Slice returns molecules in [from, to), clamped to the valid range.
func (g *MoleculeGenerator) Slice(from, to int) ([]*Molecule, error) {
	from, to = clampRange(from, to, g.system.NMol())
	out := make([]*Molecule, 0, to-from)
	for i := from; i < to; i++ {
		m, err := g.system.GetMolecule(i)
		if err != nil {
			return nil, errDecorate(err, "MoleculeGenerator.Slice")
		}
		out = append(out, m)
	}
	return out, nil
}

//AtomGenerator is a lazy view producing single atoms on demand.
type AtomGenerator struct {
	system *System
}

//Get returns atom i.
func (g *AtomGenerator) Get(i int) (*Atom, error) {
	return g.system.GetAtom(i)
}

//Slice returns atoms in [from, to), clamped to the valid range.
func (g *AtomGenerator) Slice(from, to int) ([]*Atom, error) {
	from, to = clampRange(from, to, g.system.NAtoms())
	out := make([]*Atom, 0, to-from)
	for i := from; i < to; i++ {
		a, err := g.system.GetAtom(i)
		if err != nil {
			return nil, errDecorate(err, "AtomGenerator.Slice")
		}
		out = append(out, a)
	}
	return out, nil
}

func clampRange(from, to, n int) (int, int) {
	if from < 0 {
		from = 0
	}
	if to > n {
		to = n
	}
	if from > to {
		from = to
	}
	return from, to
}
