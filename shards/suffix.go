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

package shards

import (
	"fmt"

	"android/bundletool/splitter"
)

// SuffixManager hands out stable, unique split-id suffixes for the
// additional splits of a system image. The same (module, targeting) pair
// always yields the same suffix; a colliding suffix from a different pair
// gets a numeric tiebreaker.
type SuffixManager struct {
	used    map[string]bool
	granted map[string]string
}

func NewSuffixManager() *SuffixManager {
	return &SuffixManager{
		used:    map[string]bool{},
		granted: map[string]string{},
	}
}

// Suffix returns the unique suffix for a split.
func (sm *SuffixManager) Suffix(s *splitter.ModuleSplit) string {
	key := s.ModuleName + "\x00" + string(s.ApkTargeting.Marshal()) +
		fmt.Sprintf("\x00%v", s.MasterSplit)
	if suffix, ok := sm.granted[key]; ok {
		return suffix
	}
	base := s.SuffixName()
	suffix := base
	for i := 2; sm.used[s.ModuleName+"."+suffix]; i++ {
		suffix = fmt.Sprintf("%s_%d", base, i)
	}
	sm.used[s.ModuleName+"."+suffix] = true
	sm.granted[key] = suffix
	return suffix
}

// StampSplitId writes the managed split id into the split's manifest.
func (sm *SuffixManager) StampSplitId(s *splitter.ModuleSplit) *splitter.ModuleSplit {
	suffix := sm.Suffix(s)
	id := s.SplitId()
	if !s.MasterSplit {
		prefix := ""
		if s.ModuleName != "base" {
			prefix = s.ModuleName + "."
		}
		id = prefix + "config." + suffix
	}
	m := s.Manifest.Clone()
	if id != "" {
		m.SetAttribute("", "split", id)
	}
	return s.WithManifest(m)
}
