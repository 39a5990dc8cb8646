/*
 * entity.go, part of chemlab.
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

/*The entity core performs all validation on assignment and construction
 * and surfaces failures immediately; it never recovers locally. Panics
 * are reserved for programming errors (indexed reads the caller could
 * have bounds-checked), following the same policy as the rest of the
 * library.*/

//InstanceRelation is a materialized owning map between two dimensions:
//an integer index array of length dims[dim] whose values index into
//target. The (atom, molecule) map records, for every atom, the molecule
//that owns it, and is the backbone used to reconstruct molecule
//boundaries.
type InstanceRelation struct {
	dim    string
	target string
	values []int
}

//Offset adds k to every index of the relation, re-basing it for a
//concatenated target dimension.
func (r *InstanceRelation) Offset(k int) {
	for i := range r.values {
		r.values[i] += k
	}
}

//Values returns the relation's index array. The slice is shared.
func (r *InstanceRelation) Values() []int {
	return r.values
}

func (r *InstanceRelation) clone() *InstanceRelation {
	nv := make([]int, len(r.values))
	copy(nv, r.values)
	return &InstanceRelation{dim: r.dim, target: r.target, values: nv}
}

//ChemicalEntity is the generic storage engine shared by Atom, Molecule
//and System through composition: each concrete type supplies only its
//Schema, and the engine interprets it uniformly. It holds the actual
//columns, the dimension registry and the inter-dimension owning maps,
//and implements schema-driven get/set, bulk assembly from sub-entities,
//sub-entity extraction, sub-selection by dimension and aligned equality.
type ChemicalEntity struct {
	schema *Schema
	dims   *Dimensions
	store  map[string]*column
	maps   map[mapKey]*InstanceRelation
}

func newEntity(schema *Schema) *ChemicalEntity {
	return &ChemicalEntity{
		schema: schema,
		dims:   newDimensions(),
		store:  make(map[string]*column),
		maps:   make(map[mapKey]*InstanceRelation),
	}
}

//emptyEntity allocates zero/default-filled storage for every declared
//property, sized by the given dimension sizes. The entity's own
//dimension defaults to 1 and relation dimensions default to 0 when
//absent; a missing Attribute dimension is a MissingDimensionError.
func emptyEntity(schema *Schema, sizes map[string]int) (*ChemicalEntity, error) {
	e := newEntity(schema)
	for _, d := range schema.requiredDims() {
		n, ok := sizes[d]
		if !ok {
			return nil, errDecorate(missingDimension(d), "emptyEntity")
		}
		if err := e.dims.Set(d, n); err != nil {
			return nil, errDecorate(err, "emptyEntity")
		}
	}
	for _, d := range schema.allDims() {
		if e.dims.Has(d) {
			continue
		}
		n, ok := sizes[d]
		if !ok {
			if d == schema.Dimension {
				n = 1
			} else {
				n = 0 //relation-only dimensions: no bonds until set
			}
		}
		if err := e.dims.Set(d, n); err != nil {
			return nil, errDecorate(err, "emptyEntity")
		}
	}
	e.allocAll()
	return e, nil
}

//allocAll zero-fills every column and owning map at the current
//dimension sizes, replacing existing storage.
func (e *ChemicalEntity) allocAll() {
	for _, name := range e.schema.names() {
		dt, shape, _ := e.schema.descriptor(name)
		d, _ := e.schema.dimOf(name)
		e.store[name] = newColumn(dt, shape, e.dims.N(d))
	}
	for _, key := range e.schema.Maps {
		e.maps[key] = &InstanceRelation{dim: key.dim, target: key.target, values: make([]int, e.dims.N(key.dim))}
	}
}

//Dimensions returns the entity's dimension registry.
func (e *ChemicalEntity) Dimensions() *Dimensions {
	return e.dims
}

//Schema returns the entity's schema.
func (e *ChemicalEntity) Schema() *Schema {
	return e.schema
}

//Map returns the owning map from dimension dim into target, or nil if
//the schema declares none.
func (e *ChemicalEntity) Map(dim, target string) *InstanceRelation {
	return e.maps[mapKey{dim, target}]
}

func (e *ChemicalEntity) columnOf(name string) (*column, error) {
	canonical, ok := e.schema.Resolve(name)
	if !ok {
		return nil, unknownProperty(name)
	}
	c, ok := e.store[canonical]
	if !ok {
		//a schema name always has a column once the entity is built
		d, _ := e.schema.dimOf(canonical)
		dt, shape, _ := e.schema.descriptor(canonical)
		c = newColumn(dt, shape, e.dims.N(d))
		e.store[canonical] = c
	}
	return c, nil
}

//Get returns the flat backing slice of the property name (aliases
//resolve to the same storage, so writes through either name are visible
//through the other). Float properties come back as []float64 with the
//trailing shape flattened in, Int as []int, String as []string, Object
//as []interface{}.
func (e *ChemicalEntity) Get(name string) (interface{}, error) {
	c, err := e.columnOf(name)
	if err != nil {
		return nil, errDecorate(err, "Get")
	}
	return c.data(), nil
}

//Set validates value against the live size of the property's dimension
//and its declared trailing shape, then commits it. Nothing is stored on
//a validation failure. A nil value is a no-op, leaving the zero-filled
//storage in place. This is the explicit, schema-checked "set named
//property by string key" operation used by the bulk constructors.
func (e *ChemicalEntity) Set(name string, value interface{}) error {
	if value == nil {
		return nil
	}
	canonical, ok := e.schema.Resolve(name)
	if !ok {
		return errDecorate(unknownProperty(name), "Set")
	}
	d, _ := e.schema.dimOf(canonical)
	dt, shape, _ := e.schema.descriptor(canonical)
	nc := newColumn(dt, shape, e.dims.N(d))
	if err := nc.assign(value, e.dims.N(d), canonical); err != nil {
		return errDecorate(err, "Set")
	}
	e.store[canonical] = nc
	return nil
}

//setBonds resizes the bond dimension to fit pairs, stores the bonds
//relation and rebuilds the (bond, molecule) owning map from the
//(atom, molecule) map. Atom indices out of range are a RangeError and
//leave the entity untouched.
func (e *ChemicalEntity) setBonds(pairs [][2]int) error {
	rel, ok := e.schema.Relations["bonds"]
	if !ok {
		return errDecorate(unknownProperty("bonds"), "setBonds")
	}
	natoms := e.dims.N(rel.Map)
	for _, p := range pairs {
		for _, a := range p {
			if a < 0 || a >= natoms {
				return errDecorate(rangeError(rel.Map, a, natoms), "setBonds")
			}
		}
	}
	nc := newColumn(Int, rel.Shape, len(pairs))
	if err := nc.assign(pairs, len(pairs), "bonds"); err != nil {
		return errDecorate(err, "setBonds")
	}
	if err := e.dims.Set(rel.Dim, len(pairs)); err != nil {
		return errDecorate(err, "setBonds")
	}
	e.store["bonds"] = nc
	key := mapKey{rel.Dim, e.ownerDimOf(rel.Dim)}
	if owner := e.maps[key]; owner != nil {
		vals := make([]int, len(pairs))
		if am := e.maps[mapKey{rel.Map, key.target}]; am != nil && len(pairs) > 0 {
			for i, p := range pairs {
				vals[i] = am.values[p[0]]
			}
		}
		e.maps[key] = &InstanceRelation{dim: key.dim, target: key.target, values: vals}
	}
	return nil
}

//ownerDimOf returns the target of the declared owning map running along
//dim, or the entity's own dimension if none is declared.
func (e *ChemicalEntity) ownerDimOf(dim string) string {
	for _, key := range e.schema.Maps {
		if key.dim == dim {
			return key.target
		}
	}
	return e.schema.Dimension
}

//fromEntities assembles this entity from sub-entities: dimension sizes
//become the sums of the sub-entities' sizes, every Attribute becomes the
//ordered concatenation of the sub-entities' columns of the same name,
//Relations concatenate with their indices offset into the merged target
//dimension, and the owning map over subDim records, for every element,
//the index of its parent sub-entity. Sub-entities that disagree on the
//dtype or shape of a needed column, or lack it entirely, are a
//DimensionMismatchError.
func (e *ChemicalEntity) fromEntities(subs []*ChemicalEntity, subDim string) error {
	summed := map[string]bool{subDim: true}
	for _, a := range e.schema.Attributes {
		summed[a.Dim] = true
	}
	for _, r := range e.schema.Relations {
		summed[r.Dim] = true
	}
	for d := range summed {
		total := 0
		for _, sub := range subs {
			total += sub.dims.N(d)
		}
		if err := e.dims.Set(d, total); err != nil {
			return errDecorate(err, "fromEntities")
		}
	}
	if !e.dims.Has(e.schema.Dimension) {
		if err := e.dims.Set(e.schema.Dimension, 1); err != nil {
			return errDecorate(err, "fromEntities")
		}
	}
	//own fields start zero-filled; they belong to this entity, not to the subs
	for name, f := range e.schema.Fields {
		e.store[name] = newColumn(f.DType, f.Shape, e.dims.N(e.schema.Dimension))
	}
	for name, attr := range e.schema.Attributes {
		acc := newColumn(attr.DType, attr.Shape, 0)
		for _, sub := range subs {
			if _, ok := sub.schema.Resolve(name); !ok {
				return errDecorate(dimensionMismatch(name, "not defined by every sub-entity"), "fromEntities")
			}
			sc, err := sub.columnOf(name)
			if err != nil {
				return errDecorate(err, "fromEntities")
			}
			acc, err = concatColumns(acc, sc)
			if err != nil {
				return errDecorate(err, "fromEntities")
			}
		}
		e.store[name] = acc
	}
	for name, rel := range e.schema.Relations {
		acc := newColumn(Int, rel.Shape, 0)
		offset := 0
		for _, sub := range subs {
			if _, ok := sub.schema.Relations[name]; ok {
				sc, err := sub.columnOf(name)
				if err != nil {
					return errDecorate(err, "fromEntities")
				}
				shifted := sc.clone()
				for i := range shifted.i {
					shifted.i[i] += offset
				}
				acc, err = concatColumns(acc, shifted)
				if err != nil {
					return errDecorate(err, "fromEntities")
				}
			}
			offset += sub.dims.N(rel.Map)
		}
		e.store[name] = acc
	}
	for _, key := range e.schema.Maps {
		vals := make([]int, 0, e.dims.N(key.dim))
		if key.target == subDim {
			for j, sub := range subs {
				for k := 0; k < sub.dims.N(key.dim); k++ {
					vals = append(vals, j)
				}
			}
		} else {
			//the target is this entity's own (size-1) dimension
			vals = make([]int, e.dims.N(key.dim))
		}
		e.maps[key] = &InstanceRelation{dim: key.dim, target: key.target, values: vals}
	}
	return nil
}

//Subentity extracts the index-th element along target's primary
//dimension as a new, independent instance: for every property of target,
//the slice of this entity's elements whose owning-map value equals index
//is copied over, and relations are re-based to the local numbering.
func (e *ChemicalEntity) Subentity(target *Schema, index int) (*ChemicalEntity, error) {
	dim := target.Dimension
	n := e.dims.N(dim)
	if index < 0 || index >= n {
		return nil, errDecorate(rangeError(dim, index, n), "Subentity")
	}
	owned := make(map[string][]int) //per lower dimension, the global indices owned by element index
	for _, key := range e.schema.Maps {
		if key.target != dim {
			continue
		}
		m := e.maps[key]
		var kept []int
		for i, v := range m.values {
			if v == index {
				kept = append(kept, i)
			}
		}
		owned[key.dim] = kept
	}
	sub := newEntity(target)
	if err := sub.dims.Set(dim, 1); err != nil {
		return nil, errDecorate(err, "Subentity")
	}
	for _, d := range target.allDims() {
		if d == dim {
			continue
		}
		if kept, ok := owned[d]; ok {
			sub.dims.Set(d, len(kept))
		} else if !sub.dims.Has(d) {
			sub.dims.Set(d, 0)
		}
	}
	sub.allocAll()
	for _, name := range target.names() {
		d, _ := target.dimOf(name)
		if _, isRel := target.Relations[name]; isRel {
			continue //re-based below
		}
		if _, ok := e.schema.Resolve(name); !ok {
			continue //not present on the parent: stays zero-filled (e.g. export)
		}
		src, err := e.columnOf(name)
		if err != nil {
			return nil, errDecorate(err, "Subentity")
		}
		switch {
		case d == dim:
			sub.store[name] = src.slice([]int{index})
		case owned[d] != nil:
			sub.store[name] = src.slice(owned[d])
		}
	}
	for name, rel := range target.Relations {
		if _, ok := e.schema.Relations[name]; !ok {
			continue
		}
		kept := owned[rel.Dim]
		src, err := e.columnOf(name)
		if err != nil {
			return nil, errDecorate(err, "Subentity")
		}
		local := newIndexMap(owned[rel.Map])
		sliced := src.slice(kept)
		for i, v := range sliced.i {
			nv, ok := local[v]
			if !ok {
				return nil, errDecorate(rangeError(rel.Map, v, len(owned[rel.Map])), "Subentity")
			}
			sliced.i[i] = nv
		}
		sub.store[name] = sliced
	}
	return sub, nil
}

//SubDimension returns a new entity containing only the selected
//elements along dim and, transitively, every lower dimension that maps
//into the selected elements: selecting molecules also restricts atoms
//and bonds to those molecules' atoms and bonds, with all maps and
//relations re-indexed to the compacted numbering. Selecting along a
//lower dimension (atom) additionally drops relation rows (bonds) that
//would dangle. The result is an independent copy.
func (e *ChemicalEntity) SubDimension(sel Selection, dim string) (*ChemicalEntity, error) {
	if !e.dims.Has(dim) {
		return nil, errDecorate(unknownDimension(dim), "SubDimension")
	}
	if err := sel.validate(dim, e.dims.N(dim)); err != nil {
		return nil, errDecorate(err, "SubDimension")
	}
	restricted := map[string][]int{dim: sel.Indices()}
	for _, key := range e.schema.Maps {
		if key.target != dim {
			continue
		}
		m := e.maps[key]
		var kept []int
		for i, v := range m.values {
			if sel.Contains(v) {
				kept = append(kept, i)
			}
		}
		restricted[key.dim] = kept
	}
	//drop relation rows referencing dropped elements of their map dimension
	for name, rel := range e.schema.Relations {
		mapKept, ok := restricted[rel.Map]
		if !ok {
			continue
		}
		surviving := newIndexMap(mapKept)
		rows := restricted[rel.Dim]
		if rows == nil {
			rows = allIndices(e.dims.N(rel.Dim))
		}
		relCol, err := e.columnOf(name)
		if err != nil {
			return nil, errDecorate(err, "SubDimension")
		}
		st := relCol.stride()
		var kept []int
		for _, r := range rows {
			ok := true
			for k := 0; k < st; k++ {
				if _, in := surviving[relCol.i[r*st+k]]; !in {
					ok = false
					break
				}
			}
			if ok {
				kept = append(kept, r)
			}
		}
		restricted[rel.Dim] = kept
	}
	out := newEntity(e.schema)
	out.dims = e.dims.Clone()
	for d, kept := range restricted {
		out.dims.Set(d, len(kept))
	}
	for _, name := range e.schema.names() {
		d, _ := e.schema.dimOf(name)
		src, err := e.columnOf(name)
		if err != nil {
			return nil, errDecorate(err, "SubDimension")
		}
		if kept, ok := restricted[d]; ok {
			out.store[name] = src.slice(kept)
		} else {
			out.store[name] = src.clone()
		}
	}
	for name, rel := range e.schema.Relations {
		local := newIndexMap(restrictedOrAll(restricted, rel.Map, e.dims.N(rel.Map)))
		c := out.store[name]
		for i, v := range c.i {
			c.i[i] = local[v]
		}
	}
	for _, key := range e.schema.Maps {
		m := e.maps[key]
		rows := restrictedOrAll(restricted, key.dim, e.dims.N(key.dim))
		local := newIndexMap(restrictedOrAll(restricted, key.target, e.dims.N(key.target)))
		vals := make([]int, 0, len(rows))
		for _, r := range rows {
			vals = append(vals, local[m.values[r]])
		}
		out.maps[key] = &InstanceRelation{dim: key.dim, target: key.target, values: vals}
	}
	return out, nil
}

//Equal reports aligned equality: same dimension sizes, element-wise
//equal columns for every declared property, and equal owning maps.
func (e *ChemicalEntity) Equal(other *ChemicalEntity) bool {
	if other == nil || !e.dims.equal(other.dims) {
		return false
	}
	for _, name := range e.schema.names() {
		ca, err1 := e.columnOf(name)
		cb, err2 := other.columnOf(name)
		if err1 != nil || err2 != nil || !ca.equal(cb) {
			return false
		}
	}
	for _, key := range e.schema.Maps {
		ma, mb := e.maps[key], other.maps[key]
		if (ma == nil) != (mb == nil) {
			return false
		}
		if ma == nil {
			continue
		}
		if len(ma.values) != len(mb.values) {
			return false
		}
		for i, v := range ma.values {
			if mb.values[i] != v {
				return false
			}
		}
	}
	return true
}

//clone returns a deep, independent copy.
func (e *ChemicalEntity) clone() *ChemicalEntity {
	out := newEntity(e.schema)
	out.dims = e.dims.Clone()
	for name, c := range e.store {
		out.store[name] = c.clone()
	}
	for key, m := range e.maps {
		out.maps[key] = m.clone()
	}
	return out
}

func newIndexMap(kept []int) map[int]int {
	m := make(map[int]int, len(kept))
	for newIdx, oldIdx := range kept {
		m[oldIdx] = newIdx
	}
	return m
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func restrictedOrAll(restricted map[string][]int, dim string, n int) []int {
	if kept, ok := restricted[dim]; ok {
		return kept
	}
	return allIndices(n)
}

