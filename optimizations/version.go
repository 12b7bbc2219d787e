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

package optimizations

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a tool version of the form MAJOR.MINOR.PATCH with an optional
// -qualifier. Qualified versions (pre-releases) order before the release
// they qualify.
type Version struct {
	major, minor, patch int
	qualifier           string
}

func ParseVersion(s string) (Version, error) {
	release, qualifier, _ := strings.Cut(s, "-")
	parts := strings.Split(release, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version %q: expected MAJOR.MINOR.PATCH", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version %q: %q is not a number", s, p)
		}
		nums[i] = n
	}
	return Version{major: nums[0], minor: nums[1], patch: nums[2], qualifier: qualifier}, nil
}

// MustParseVersion parses a version known at compile time.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
	if v.qualifier != "" {
		s += "-" + v.qualifier
	}
	return s
}

// Compare orders versions; a qualified version precedes its release.
func (v Version) Compare(other Version) int {
	if c := v.major - other.major; c != 0 {
		return sign(c)
	}
	if c := v.minor - other.minor; c != 0 {
		return sign(c)
	}
	if c := v.patch - other.patch; c != 0 {
		return sign(c)
	}
	switch {
	case v.qualifier == other.qualifier:
		return 0
	case v.qualifier == "":
		return 1
	case other.qualifier == "":
		return -1
	}
	return strings.Compare(v.qualifier, other.qualifier)
}

func (v Version) AtLeast(other Version) bool {
	return v.Compare(other) >= 0
}

func sign(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	}
	return 0
}
