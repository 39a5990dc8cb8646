/*
 * array.go, part of chemlab.
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
	"reflect"

	"gonum.org/v1/gonum/mat"
)

//column is the storage for one named property: a flat backing slice of
//the property's dtype plus the trailing shape, so a (3,)-shaped float
//property over n elements is 3n float64 values. The leading-axis length
//of a column always equals the size of the dimension that indexes it.
type column struct {
	dtype DType
	shape []int
	f     []float64
	i     []int
	s     []string
	o     []interface{}
}

func strideOf(shape []int) int {
	st := 1
	for _, s := range shape {
		st *= s
	}
	return st
}

//newColumn allocates a zero/default-filled column for n leading
//elements.
func newColumn(dtype DType, shape []int, n int) *column {
	c := &column{dtype: dtype, shape: shape}
	st := strideOf(shape)
	switch dtype {
	case Float:
		c.f = make([]float64, n*st)
	case Int:
		c.i = make([]int, n*st)
	case String:
		c.s = make([]string, n*st)
	case Object:
		c.o = make([]interface{}, n*st)
	}
	return c
}

func (c *column) stride() int {
	return strideOf(c.shape)
}

//leadLen is the length of the leading axis.
func (c *column) leadLen() int {
	st := c.stride()
	switch c.dtype {
	case Float:
		return len(c.f) / st
	case Int:
		return len(c.i) / st
	case String:
		return len(c.s) / st
	case Object:
		return len(c.o) / st
	}
	return 0
}

//data returns the flat backing slice. The slice is shared with the
//column, so element writes through it are visible to every reader.
func (c *column) data() interface{} {
	switch c.dtype {
	case Float:
		return c.f
	case Int:
		return c.i
	case String:
		return c.s
	}
	return c.o
}

func (c *column) clone() *column {
	nc := newColumn(c.dtype, c.shape, c.leadLen())
	copy(nc.f, c.f)
	copy(nc.i, c.i)
	copy(nc.s, c.s)
	copy(nc.o, c.o)
	return nc
}

//slice returns a new column holding the rows of c listed in indices, in
//order. The indices must already be validated by the caller.
func (c *column) slice(indices []int) *column {
	st := c.stride()
	nc := newColumn(c.dtype, c.shape, len(indices))
	for k, idx := range indices {
		switch c.dtype {
		case Float:
			copy(nc.f[k*st:(k+1)*st], c.f[idx*st:(idx+1)*st])
		case Int:
			copy(nc.i[k*st:(k+1)*st], c.i[idx*st:(idx+1)*st])
		case String:
			copy(nc.s[k*st:(k+1)*st], c.s[idx*st:(idx+1)*st])
		case Object:
			copy(nc.o[k*st:(k+1)*st], c.o[idx*st:(idx+1)*st])
		}
	}
	return nc
}

//concatColumns returns the ordered concatenation of a then b along the
//leading axis. The columns must agree on dtype and trailing shape.
func concatColumns(a, b *column) (*column, error) {
	if a.dtype != b.dtype || a.stride() != b.stride() {
		return nil, dimensionMismatch("column", "dtype or trailing shape differ")
	}
	nc := newColumn(a.dtype, a.shape, a.leadLen()+b.leadLen())
	switch a.dtype {
	case Float:
		copy(nc.f, a.f)
		copy(nc.f[len(a.f):], b.f)
	case Int:
		copy(nc.i, a.i)
		copy(nc.i[len(a.i):], b.i)
	case String:
		copy(nc.s, a.s)
		copy(nc.s[len(a.s):], b.s)
	case Object:
		copy(nc.o, a.o)
		copy(nc.o[len(a.o):], b.o)
	}
	return nc, nil
}

func (c *column) equal(o *column) bool {
	if c.dtype != o.dtype || c.stride() != o.stride() || c.leadLen() != o.leadLen() {
		return false
	}
	switch c.dtype {
	case Float:
		for k, v := range c.f {
			if o.f[k] != v {
				return false
			}
		}
	case Int:
		for k, v := range c.i {
			if o.i[k] != v {
				return false
			}
		}
	case String:
		for k, v := range c.s {
			if o.s[k] != v {
				return false
			}
		}
	case Object:
		//payloads are opaque and may be uncomparable (maps, slices)
		for k, v := range c.o {
			if !reflect.DeepEqual(o.o[k], v) {
				return false
			}
		}
	}
	return true
}

//assign validates value against n leading elements and commits it into
//the column, replacing the previous contents. Nothing is written on a
//failed validation. Object columns only validate the leading length; a
//bare value is accepted for a single-element Object column, matching
//the free-form export payloads.
func (c *column) assign(value interface{}, n int, name string) error {
	st := c.stride()
	want := n * st
	switch c.dtype {
	case Float:
		var flat []float64
		switch v := value.(type) {
		case []float64:
			flat = v
		case [3]float64:
			flat = v[:]
		case float64:
			flat = []float64{v}
		case *mat.Dense:
			r, cl := v.Dims()
			if r != n || cl != st {
				return shapeError(name, want, r*cl)
			}
			flat = make([]float64, 0, want)
			for i := 0; i < r; i++ {
				flat = append(flat, v.RawRowView(i)...)
			}
		default:
			return shapeError(name, want, -1)
		}
		if len(flat) != want {
			return shapeError(name, want, len(flat))
		}
		c.f = make([]float64, want)
		copy(c.f, flat)
	case Int:
		var flat []int
		switch v := value.(type) {
		case []int:
			flat = v
		case [][2]int:
			if st != 2 {
				return shapeError(name, want, 2*len(v))
			}
			flat = make([]int, 0, 2*len(v))
			for _, p := range v {
				flat = append(flat, p[0], p[1])
			}
		case int:
			flat = []int{v}
		default:
			return shapeError(name, want, -1)
		}
		if len(flat) != want {
			return shapeError(name, want, len(flat))
		}
		c.i = make([]int, want)
		copy(c.i, flat)
	case String:
		var flat []string
		switch v := value.(type) {
		case []string:
			flat = v
		case string:
			flat = []string{v}
		default:
			return shapeError(name, want, -1)
		}
		if len(flat) != want {
			return shapeError(name, want, len(flat))
		}
		c.s = make([]string, want)
		copy(c.s, flat)
	case Object:
		if v, ok := value.([]interface{}); ok {
			if len(v) != want {
				return shapeError(name, want, len(v))
			}
			c.o = make([]interface{}, want)
			copy(c.o, v)
			return nil
		}
		if want != 1 {
			return shapeError(name, want, 1)
		}
		c.o = []interface{}{value}
	}
	return nil
}

//dense wraps the column's float storage as an n x stride gonum matrix
//sharing the backing slice, so writes through the matrix are visible to
//the column and vice versa. Returns nil for an empty leading axis, as
//gonum does not represent zero-sized matrices.
func (c *column) dense() *mat.Dense {
	if c.dtype != Float {
		panic("chem: dense view requested on a non-float column")
	}
	n := c.leadLen()
	if n == 0 {
		return nil
	}
	return mat.NewDense(n, c.stride(), c.f)
}
