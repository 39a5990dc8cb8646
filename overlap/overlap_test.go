/*
 * overlap_test.go, part of chemlab.
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

package overlap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestPoints(t *testing.T) {
	ref := mat.NewDense(3, 3, []float64{
		0, 0, 0,
		5, 0, 0,
		5.1, 0, 0,
	})
	query := mat.NewDense(1, 3, []float64{5, 0, 0})

	hits, err := Points(query, ref, 0.2, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, hits)

	hits, err = Points(query, ref, 0.05, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, hits)

	hits, err = Points(query, ref, 0.0001, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, hits) //zero distance counts as within any cutoff
}

func TestPointsPeriodic(t *testing.T) {
	//0.1 and 9.9 are 0.2 apart through the wall of a box of side 10
	ref := mat.NewDense(1, 3, []float64{0.1, 0, 0})
	query := mat.NewDense(1, 3, []float64{9.9, 0, 0})

	hits, err := Points(query, ref, 0.3, nil)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = Points(query, ref, 0.3, []float64{10, 10, 10})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, hits)

	//a zero box length disables wrapping on that axis
	hits, err = Points(query, ref, 0.3, []float64{0, 10, 10})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestPointsNilInputs(t *testing.T) {
	q := mat.NewDense(1, 3, nil)
	hits, err := Points(nil, q, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, hits)
	hits, err = Points(q, nil, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestPointsValidation(t *testing.T) {
	bad := mat.NewDense(1, 2, nil)
	good := mat.NewDense(1, 3, nil)
	_, err := Points(bad, good, 1, nil)
	assert.Error(t, err)
	_, err = Points(good, good, 1, []float64{10, 10})
	assert.Error(t, err)
}
