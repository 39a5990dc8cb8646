/*
 * schema.go, part of chemlab.
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

//DType is the element type of a stored property.
type DType int

const (
	Float DType = iota
	Int
	String
	//Object columns hold opaque payloads and are never shape-validated
	//beyond their leading axis.
	Object
)

//Field describes a property stored directly on an entity. Its leading
//axis runs along the entity's own primary dimension, so a Field on a
//Molecule or System instance holds exactly one element.
type Field struct {
	DType DType
	Shape []int //trailing shape beyond the leading axis, e.g. {3} for a 3-vector
	Alias string
}

//Attribute describes a property of a composite entity that is the
//aggregation of a lower-dimension entity's Field across the declared
//dimension Dim; e.g. System.r_array is the concatenation of every
//constituent atom's r_array.
type Attribute struct {
	DType DType
	Shape []int
	Dim   string
	Alias string
}

//Relation describes a named correspondence between two dimensions: an
//integer index array along Dim whose values point into Map. The bonds
//relation runs along the bond dimension, with shape {2}, mapping into
//atom.
type Relation struct {
	Dim   string
	Map   string
	Shape []int
}

//mapKey identifies an owning map between two dimensions, e.g.
//{atom, molecule} records, for every atom, the molecule that owns it.
type mapKey struct {
	dim    string //the dimension the map runs along
	target string //the dimension its values index into
}

//Schema is the declarative description of an entity type: which named
//properties exist, how each is stored, and which dimension indexes it.
//Schemas are plain data attached per entity type and interpreted
//uniformly by ChemicalEntity; the concrete types carry no storage
//behavior of their own.
type Schema struct {
	Dimension  string //the entity's own primary dimension
	Fields     map[string]Field
	Attributes map[string]Attribute
	Relations  map[string]Relation
	Maps       []mapKey //owning maps materialized on every instance
}

//Resolve maps name, which may be an alias such as "r", to the canonical
//storage name such as "r_array". The second return is false if the
//schema declares no such property.
func (s *Schema) Resolve(name string) (string, bool) {
	if _, ok := s.Fields[name]; ok {
		return name, true
	}
	if _, ok := s.Attributes[name]; ok {
		return name, true
	}
	if _, ok := s.Relations[name]; ok {
		return name, true
	}
	for k, f := range s.Fields {
		if f.Alias != "" && f.Alias == name {
			return k, true
		}
	}
	for k, a := range s.Attributes {
		if a.Alias != "" && a.Alias == name {
			return k, true
		}
	}
	return "", false
}

//dimOf returns the dimension the canonical property name is indexed by.
func (s *Schema) dimOf(name string) (string, bool) {
	if _, ok := s.Fields[name]; ok {
		return s.Dimension, true
	}
	if a, ok := s.Attributes[name]; ok {
		return a.Dim, true
	}
	if r, ok := s.Relations[name]; ok {
		return r.Dim, true
	}
	return "", false
}

//descriptor returns the dtype and trailing shape of the canonical
//property name. Relations are Int-typed.
func (s *Schema) descriptor(name string) (DType, []int, bool) {
	if f, ok := s.Fields[name]; ok {
		return f.DType, f.Shape, true
	}
	if a, ok := s.Attributes[name]; ok {
		return a.DType, a.Shape, true
	}
	if r, ok := s.Relations[name]; ok {
		return Int, r.Shape, true
	}
	return 0, nil, false
}

//names returns every canonical property name, fields first.
func (s *Schema) names() []string {
	out := make([]string, 0, len(s.Fields)+len(s.Attributes)+len(s.Relations))
	for k := range s.Fields {
		out = append(out, k)
	}
	for k := range s.Attributes {
		out = append(out, k)
	}
	for k := range s.Relations {
		out = append(out, k)
	}
	return out
}

//requiredDims returns the dimensions whose sizes an allocation must
//know: the dimensions of every Attribute. The entity's own dimension
//defaults to 1 and relation dimensions default to 0 when not given, as
//an entity can exist with no bonds but not with undefined atoms.
func (s *Schema) requiredDims() []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range s.Attributes {
		if !seen[a.Dim] {
			seen[a.Dim] = true
			out = append(out, a.Dim)
		}
	}
	return out
}

//allDims returns every dimension the schema mentions.
func (s *Schema) allDims() []string {
	seen := map[string]bool{s.Dimension: true}
	out := []string{s.Dimension}
	add := func(d string) {
		if d != "" && !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	for _, a := range s.Attributes {
		add(a.Dim)
	}
	for _, r := range s.Relations {
		add(r.Dim)
		add(r.Map)
	}
	for _, m := range s.Maps {
		add(m.dim)
		add(m.target)
	}
	return out
}

//Assign validates values against the live size of the attribute's
//dimension on e and stores them under name. It is a convenience
//forwarding to the entity's schema-checked Set.
func (a Attribute) Assign(e *ChemicalEntity, name string, values interface{}) error {
	err := e.Set(name, values)
	if err != nil {
		return errDecorate(err, "Attribute.Assign")
	}
	return nil
}

//Concatenate returns the attribute's value for a merged entity: the
//ordered concatenation of ea's then eb's values along the indexed axis,
//with any trailing vector shape preserved. The result is an independent
//flat slice.
func (a Attribute) Concatenate(name string, ea, eb *ChemicalEntity) (interface{}, error) {
	ca, err := ea.columnOf(name)
	if err != nil {
		return nil, errDecorate(err, "Attribute.Concatenate")
	}
	cb, err := eb.columnOf(name)
	if err != nil {
		return nil, errDecorate(err, "Attribute.Concatenate")
	}
	cc, err := concatColumns(ca, cb)
	if err != nil {
		return nil, errDecorate(err, "Attribute.Concatenate")
	}
	return cc.data(), nil
}
