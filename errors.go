/*
 * errors.go, part of chemlab.
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

import "fmt"

//CError is the concrete error type used across the library. The Decorate
//method allows callers to append context (normally the caller's name)
//while passing the error up, without wrapping it in another type.
type CError struct {
	msg  string
	deco []string
}

func (e *CError) Error() string { return e.msg }

//Decorate adds deco to the error's decoration slice, unless deco is
//empty, and returns the current slice.
func (e *CError) Decorate(deco string) []string {
	if deco != "" {
		e.deco = append(e.deco, deco)
	}
	return e.deco
}

//errDecorate adds context to err if it implements the Error interface of
//this library, and returns err either way.
func errDecorate(err error, caller string) error {
	e, ok := err.(Error)
	if !ok {
		return err
	}
	e.Decorate(caller)
	return e
}

//UnknownDimensionError reports a request for a dimension that was never
//set on an entity.
type UnknownDimensionError struct {
	CError
	Dim string
}

func unknownDimension(dim string) *UnknownDimensionError {
	return &UnknownDimensionError{CError{fmt.Sprintf("Unknown dimension: %q", dim), nil}, dim}
}

//MissingDimensionError reports that a required dimension size was not
//supplied to a bulk allocation.
type MissingDimensionError struct {
	CError
	Dim string
}

func missingDimension(dim string) *MissingDimensionError {
	return &MissingDimensionError{CError{fmt.Sprintf("Missing required dimension size: %q", dim), nil}, dim}
}

//MissingArgumentError reports that a required bulk-construction argument
//was absent.
type MissingArgumentError struct {
	CError
	Arg string
}

func missingArgument(arg string) *MissingArgumentError {
	return &MissingArgumentError{CError{fmt.Sprintf("%s is a required argument", arg), nil}, arg}
}

//ShapeError reports that an assigned value's shape disagrees with the
//live dimension size or the declared fixed shape of a property.
type ShapeError struct {
	CError
	Name string
	Want int
	Got  int
}

func shapeError(name string, want, got int) *ShapeError {
	return &ShapeError{CError{fmt.Sprintf("Shape mismatch for %q: want %d elements, got %d", name, want, got), nil}, name, want, got}
}

//DimensionMismatchError reports that sub-entities being aggregated
//disagree on the schema of a property.
type DimensionMismatchError struct {
	CError
	Name string
}

func dimensionMismatch(name, detail string) *DimensionMismatchError {
	return &DimensionMismatchError{CError{fmt.Sprintf("Sub-entities disagree on %q: %s", name, detail), nil}, name}
}

//RangeError reports a sub-selection index out of range, or a boolean
//mask whose length does not match the selected dimension.
type RangeError struct {
	CError
	Dim   string
	Index int
	Size  int
}

func rangeError(dim string, index, size int) *RangeError {
	return &RangeError{CError{fmt.Sprintf("Index %d out of range for dimension %q of size %d", index, dim, size), nil}, dim, index, size}
}

func maskLenError(dim string, got, size int) *RangeError {
	return &RangeError{CError{fmt.Sprintf("Boolean mask of length %d does not match dimension %q of size %d", got, dim, size), nil}, dim, got, size}
}

//UnknownPropertyError reports a get or set by a name that no Field,
//Attribute or Relation of the entity's schema declares.
type UnknownPropertyError struct {
	CError
	Name string
}

func unknownProperty(name string) *UnknownPropertyError {
	return &UnknownPropertyError{CError{fmt.Sprintf("No property %q in schema", name), nil}, name}
}
