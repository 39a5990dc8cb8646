/*
 * interfaces.go, part of chemlab.
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

//Error is the interface implemented by all errors of this library. The
//Decorate method allows adding information (normally the name of the
//function passing the error up) without changing the error's type or
//wrapping it; called with an empty string it just returns the current
//decoration slice.
type Error interface {
	error
	Decorate(string) []string
}

//SystemReader is the contract at which external file-format readers
//plug in: reading a "system" record yields a populated System. The
//library owns no persistence format itself.
type SystemReader interface {
	ReadSystem() (*System, error)
}

//TrajReader is the contract for external trajectory readers: each
//frame is a time and the coordinate array for all atoms.
type TrajReader interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//Next returns the next frame's time and its Nx3 coordinates.
	Next() (float64, *mat.Dense, error)

	//Len returns the number of atoms per frame.
	Len() int
}
