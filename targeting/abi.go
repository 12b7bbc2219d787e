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

// Package targeting implements the dimension logic shared by the splitters
// and the shard generators: ABI and density orderings, targeted directory
// name parsing, the variant preference order and sibling alternatives.
package targeting

import (
	"sort"

	bp "android/bundletool/bundle_proto"
)

// abiPriorities orders architectures for variant comparison. A higher
// number means a higher priority. This order must be kept identical across
// the toolchain.
var abiPriorities = map[bp.Abi_AbiAlias]int{
	bp.Abi_ARMEABI:     1,
	bp.Abi_ARMEABI_V7A: 2,
	bp.Abi_ARM64_V8A:   3,
	bp.Abi_X86:         4,
	bp.Abi_X86_64:      5,
	bp.Abi_MIPS:        6,
	bp.Abi_MIPS64:      7,
}

// AbiPriority returns the ordering rank of an architecture; unknown
// architectures rank lowest.
func AbiPriority(abi bp.Abi_AbiAlias) int {
	return abiPriorities[abi]
}

// abiDirNames maps lib/<dir> directory names to ABI aliases.
var abiDirNames = map[string]bp.Abi_AbiAlias{
	"armeabi":     bp.Abi_ARMEABI,
	"armeabi-v7a": bp.Abi_ARMEABI_V7A,
	"arm64-v8a":   bp.Abi_ARM64_V8A,
	"x86":         bp.Abi_X86,
	"x86_64":      bp.Abi_X86_64,
	"mips":        bp.Abi_MIPS,
	"mips64":      bp.Abi_MIPS64,
}

var abiDirByAlias = func() map[bp.Abi_AbiAlias]string {
	m := make(map[bp.Abi_AbiAlias]string, len(abiDirNames))
	for name, alias := range abiDirNames {
		m[alias] = name
	}
	return m
}()

// AbiFromDirName resolves a lib/<dir> directory name to an ABI alias.
func AbiFromDirName(dir string) (bp.Abi_AbiAlias, bool) {
	abi, ok := abiDirNames[dir]
	return abi, ok
}

// AbiDirName returns the lib/<dir> directory name of an ABI.
func AbiDirName(abi bp.Abi_AbiAlias) string {
	return abiDirByAlias[abi]
}

// Is64Bit reports whether an architecture is 64-bit.
func Is64Bit(abi bp.Abi_AbiAlias) bool {
	switch abi {
	case bp.Abi_ARM64_V8A, bp.Abi_X86_64, bp.Abi_MIPS64:
		return true
	}
	return false
}

// SortAbis orders architectures by priority.
func SortAbis(abis []bp.Abi_AbiAlias) {
	sort.Slice(abis, func(i, j int) bool {
		return abiPriorities[abis[i]] < abiPriorities[abis[j]]
	})
}

// MultiAbiCompare orders two multi-ABI values: element-wise by descending
// priority, shorter sets first on ties.
func MultiAbiCompare(a, b []*bp.Abi) int {
	sorted := func(abis []*bp.Abi) []*bp.Abi {
		out := append([]*bp.Abi(nil), abis...)
		sort.Slice(out, func(i, j int) bool {
			return abiPriorities[out[i].Alias] > abiPriorities[out[j].Alias]
		})
		return out
	}
	sa, sb := sorted(a), sorted(b)
	for i := 0; i < len(sa) && i < len(sb); i++ {
		pa, pb := abiPriorities[sa[i].Alias], abiPriorities[sb[i].Alias]
		if pa != pb {
			if pa > pb {
				return 1
			}
			return -1
		}
	}
	return len(sa) - len(sb)
}
