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

// Splitter consumes one split and returns a non-empty sequence of splits
// with disjoint targeting in one dimension. A splitter with nothing to do
// returns its input unchanged.
type Splitter interface {
	Split(s *ModuleSplit) ([]*ModuleSplit, error)
}

// Pipeline applies splitters in order: each splitter runs on every current
// split and the results concatenate, so two splitters with n and m outputs
// yield up to n*m splits.
type Pipeline struct {
	splitters []Splitter
}

func NewPipeline(splitters ...Splitter) Pipeline {
	return Pipeline{splitters: splitters}
}

func (p Pipeline) Split(s *ModuleSplit) ([]*ModuleSplit, error) {
	splits := []*ModuleSplit{s}
	for _, splitter := range p.splitters {
		var next []*ModuleSplit
		for _, in := range splits {
			out, err := splitter.Split(in)
			if err != nil {
				return nil, err
			}
			next = append(next, out...)
		}
		splits = next
	}
	return splits, nil
}
