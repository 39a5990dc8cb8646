/*
 * doc.go, part of chemlab.
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

/*
Package chem models molecular structures (atoms, molecules and aggregate
systems of molecules) as collections of flat, tightly-packed arrays
organized by dimension (atom, molecule, bond), for efficient bulk
construction, slicing, merging and sub-selection in molecular-simulation
workflows.

The center of the package is a generic, schema-driven storage engine,
ChemicalEntity, which maps heterogeneous named properties (per-atom,
per-molecule, per-bond) onto shared-length array storage. Concrete entity
types (Atom, Molecule, System) only declare their schema; the engine
interprets it uniformly: composing higher-dimension entities from
lower-dimension ones, extracting sub-entities, sub-selecting along a
dimension with transitive restriction of the lower dimensions, and
merging aligned storage, all while keeping every array's leading axis in
lockstep with the dimension sizes.

Nx3 coordinate blocks and 3x3 box-vector matrices are gonum Dense
matrices. File formats, space-group expansion, trajectory analysis and
visualization are external collaborators: readers plug in through the
SystemReader/TrajReader interfaces, and the geometric overlap primitive
used by MergeSystems is injectable through the OverlapDetector variable
(the overlap subpackage provides the default).
*/
package chem
