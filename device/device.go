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

// Package device holds the target device description used by the system
// and language targeted flows.
package device

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"android/bundletool/bundle"
)

// Spec describes one target device. It mirrors the JSON produced by device
// introspection tooling.
type Spec struct {
	SupportedAbis    []string `json:"supportedAbis"`
	SupportedLocales []string `json:"supportedLocales"`
	ScreenDensity    int      `json:"screenDensity"`
	SdkVersion       int      `json:"sdkVersion"`
	DeviceTier       string   `json:"deviceTier,omitempty"`
	CountrySet       string   `json:"countrySet,omitempty"`
}

// Parse reads and validates a device spec.
func Parse(r io.Reader) (*Spec, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	spec := new(Spec)
	if err := dec.Decode(spec); err != nil {
		return nil, bundle.Errorf(bundle.InvalidDeviceSpec, "cannot parse device spec: %v", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// ParseFile reads and validates a device spec from a JSON file.
func ParseFile(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	spec, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

func (s *Spec) Validate() error {
	if s.SdkVersion <= 0 {
		return bundle.Errorf(bundle.InvalidDeviceSpec, "sdkVersion must be positive, got %d", s.SdkVersion)
	}
	if s.ScreenDensity <= 0 {
		return bundle.Errorf(bundle.InvalidDeviceSpec, "screenDensity must be positive, got %d", s.ScreenDensity)
	}
	if len(s.SupportedAbis) == 0 {
		return bundle.Errorf(bundle.InvalidDeviceSpec, "supportedAbis must not be empty")
	}
	return nil
}

// Languages returns the device's locales reduced to their language part,
// deduplicated, in first-seen order.
func (s *Spec) Languages() []string {
	seen := map[string]bool{}
	var out []string
	for _, locale := range s.SupportedLocales {
		lang, _, _ := strings.Cut(locale, "-")
		lang = strings.ToLower(lang)
		if lang == "" || seen[lang] {
			continue
		}
		seen[lang] = true
		out = append(out, lang)
	}
	return out
}

// SupportsLanguage reports whether any device locale has the given language.
func (s *Spec) SupportsLanguage(lang string) bool {
	lang = strings.ToLower(lang)
	for _, l := range s.Languages() {
		if l == lang {
			return true
		}
	}
	return false
}
