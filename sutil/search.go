/*
NAME
  search.go - sorted-timestamp binary search shared by PGS and VobSub seek.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sutil

import "sort"

// BinarySearchTimestamp returns the index of the greatest element of
// the ascending-sorted slice ts that is <= target, or 0 if ts is empty
// or every element is greater than target.
func BinarySearchTimestamp(ts []uint32, target uint32) int {
	if len(ts) == 0 {
		return 0
	}
	// i is the index of the first element > target.
	i := sort.Search(len(ts), func(i int) bool { return ts[i] > target })
	if i == 0 {
		return 0
	}
	return i - 1
}
