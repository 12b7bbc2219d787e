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

package splitter

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"android/bundletool/bundle"
	bp "android/bundletool/bundle_proto"
)

// SanitizeAbiDirs drops lib/<abi> directories with fewer files than the
// best-covered ABI, so every remaining ABI split carries the same library
// set. Dropped paths are logged. The native targeting is adjusted to the
// surviving directories.
func SanitizeAbiDirs(s *ModuleSplit, logger *log.Logger) *ModuleSplit {
	counts := map[string]int{}
	for _, e := range s.Entries {
		if !strings.HasPrefix(e.Path, bundle.LibDirectory+"/") {
			continue
		}
		parts := strings.SplitN(e.Path, "/", 3)
		if len(parts) < 3 {
			continue
		}
		counts[parts[0]+"/"+parts[1]]++
	}
	if len(counts) == 0 {
		return s
	}
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	var dropped []string
	for dir, c := range counts {
		if c < max {
			dropped = append(dropped, dir)
		}
	}
	if len(dropped) == 0 {
		return s
	}
	sort.Strings(dropped)

	var entries []bundle.Entry
	var droppedPaths []string
	for _, e := range s.Entries {
		isDropped := false
		for _, dir := range dropped {
			if strings.HasPrefix(e.Path, dir+"/") {
				isDropped = true
				break
			}
		}
		if isDropped {
			droppedPaths = append(droppedPaths, e.Path)
		} else {
			entries = append(entries, e)
		}
	}
	if logger != nil {
		logger.Printf("module %q: ABI directories have inconsistent file counts; dropping %s",
			s.ModuleName, strings.Join(droppedPaths, ", "))
	}

	out := s.WithEntries(entries)
	if s.NativeLibs != nil {
		kept := &bp.NativeLibraries{}
		for _, d := range s.NativeLibs.Directory {
			isDropped := false
			for _, dir := range dropped {
				if strings.TrimSuffix(d.Path, "/") == dir {
					isDropped = true
					break
				}
			}
			if !isDropped {
				kept.Directory = append(kept.Directory, d)
			}
		}
		out.NativeLibs = kept
	}
	return out
}

var classesDexRe = regexp.MustCompile(`^dex/classes([0-9]*)\.dex$`)

// RenumberClassesDex fixes bundles produced by tools that emitted
// dex/classes1.dex alongside dex/classes.dex: classes1.dex becomes
// classes2.dex and every higher index shifts up by one. classes.dex is
// untouched.
func RenumberClassesDex(s *ModuleSplit) *ModuleSplit {
	if _, found := findDexIndex(s.Entries, 1); !found {
		return s
	}
	entries := make([]bundle.Entry, len(s.Entries))
	for i, e := range s.Entries {
		if m := classesDexRe.FindStringSubmatch(e.Path); m != nil && m[1] != "" {
			n, _ := strconv.Atoi(m[1])
			e.Path = fmt.Sprintf("dex/classes%d.dex", n+1)
		}
		entries[i] = e
	}
	return s.WithEntries(entries)
}

func findDexIndex(entries []bundle.Entry, index int) (bundle.Entry, bool) {
	want := fmt.Sprintf("dex/classes%d.dex", index)
	for _, e := range entries {
		if e.Path == want {
			return e, true
		}
	}
	return bundle.Entry{}, false
}

// RemoveRPackageDex drops the highest-numbered dex file of an SDK module
// being converted into an app module; it holds only the RPackage class the
// app inherits from its base.
func RemoveRPackageDex(s *ModuleSplit) *ModuleSplit {
	highest := -1
	highestPath := ""
	for _, e := range s.Entries {
		m := classesDexRe.FindStringSubmatch(e.Path)
		if m == nil {
			continue
		}
		n := 0
		if m[1] != "" {
			n, _ = strconv.Atoi(m[1])
		}
		if n > highest {
			highest = n
			highestPath = e.Path
		}
	}
	if highestPath == "" {
		return s
	}
	var entries []bundle.Entry
	for _, e := range s.Entries {
		if e.Path != highestPath {
			entries = append(entries, e)
		}
	}
	return s.WithEntries(entries)
}
