// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package packetdump

// FilterCallback can be used to filter packets to dump.
// The callback returns whether or not to print dump the packet's content.
type FilterCallback func(dump *Dump) bool

// DirectionFilter returns a filter keeping only the given directions.
func DirectionFilter(dirs ...Direction) FilterCallback {
	return func(dump *Dump) bool {
		for _, dir := range dirs {
			if dump.Direction == dir {
				return true
			}
		}

		return false
	}
}
