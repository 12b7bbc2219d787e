// Copyright 2024 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package targeting

import (
	"sort"

	bp "android/bundletool/bundle_proto"
)

// SdkRank returns the minimum SDK a variant targets; absent targeting ranks
// below every concrete version.
func SdkRank(t *bp.SdkVersionTargeting) int32 {
	values := t.GetValue()
	if len(values) == 0 {
		return -1
	}
	min := values[0].GetMin()
	if min == nil {
		return -1
	}
	return min.Value
}

func abiRank(t *bp.AbiTargeting) int {
	values := t.GetValue()
	if len(values) == 0 {
		return 0
	}
	// Multiple values only occur before alternatives are populated; the
	// highest-priority one decides.
	rank := 0
	for _, v := range values {
		if p := abiPriorities[v.Alias]; p > rank {
			rank = p
		}
	}
	return rank
}

// CompareVariants defines the total preference order over variant
// targetings: SDK ascending, then ABI by architecture order, then multi-ABI
// sets, then screen density ascending. A missing dimension orders below any
// concrete value.
func CompareVariants(a, b *bp.VariantTargeting) int {
	if c := compareInt32(SdkRank(a.GetSdkVersionTargeting()), SdkRank(b.GetSdkVersionTargeting())); c != 0 {
		return c
	}
	if c := compareInt(abiRank(a.GetAbiTargeting()), abiRank(b.GetAbiTargeting())); c != 0 {
		return c
	}
	if c := MultiAbiCompare(firstMultiAbi(a.GetMultiAbiTargeting()), firstMultiAbi(b.GetMultiAbiTargeting())); c != 0 {
		return c
	}
	return compareInt(int(DensityRank(a.GetScreenDensityTargeting())), int(DensityRank(b.GetScreenDensityTargeting())))
}

func firstMultiAbi(t *bp.MultiAbiTargeting) []*bp.Abi {
	values := t.GetValue()
	if len(values) == 0 {
		return nil
	}
	return values[0].GetAbi()
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareInt32(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// SortVariants orders variant targetings by CompareVariants, keeping the
// original order of equal elements.
func SortVariants(variants []*bp.VariantTargeting) {
	sort.SliceStable(variants, func(i, j int) bool {
		return CompareVariants(variants[i], variants[j]) < 0
	})
}
