// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package logmath

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidArgument is returned for arguments outside the domain of an operation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange is returned if values cannot define a valid probability.
	ErrOutOfRange = errors.New("out of range")

	// ErrNumerical is returned if a log-space computation produced NaN.
	ErrNumerical = errors.New("numerical invariant violated")
)
