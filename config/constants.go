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

package config

// Table construction constants. The capacity of the working buffer for a
// mean λ is 2 * floor(CapacityMultiplier * (CapacityBase + sqrt(λ))).
const (
	NegligibleMass     = 1e-12   // probabilities below this are excluded from a table
	CapacityMultiplier = 16.0    // scale of the sqrt(λ) capacity heuristic
	CapacityBase       = 2.0     // offset added to sqrt(λ) before scaling
	MaxCapacity        = 1 << 24 // upper bound of the working buffer (entries)
)

// Sampling defaults.
const (
	DefaultSeed      = 12345
	DefaultSamples   = 1_000_000
	DefaultEngine    = "mrg32k3a"
	DefaultMethod    = "alias"
	DefaultDomain    = "device"
	DefaultCacheSize = 16      // number of host tables kept by the table cache
	ChunkSize        = 1 << 16 // variates produced per generator chunk
)

// GitCommit represents the GitHub commit hash the app was built from.
var GitCommit = "0000000000000000000000000000000000000000"
