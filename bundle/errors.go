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

package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind is the stable machine-readable classification of a user error.
type ErrorKind string

const (
	InvalidBundle            ErrorKind = "INVALID_BUNDLE"
	InvalidCommand           ErrorKind = "INVALID_COMMAND"
	InvalidDeviceSpec        ErrorKind = "INVALID_DEVICE_SPEC"
	InvalidVersionCode       ErrorKind = "INVALID_VERSION_CODE"
	InvalidApexConfig        ErrorKind = "INVALID_APEX_CONFIG"
	FileTypeInvalid          ErrorKind = "FILE_TYPE_INVALID_FILE_EXTENSION"
	ResourceTableMissingFile ErrorKind = "RESOURCE_TABLE_MISSING_FILE"
	TextureCompressionParity ErrorKind = "TEXTURE_COMPRESSION_PARITY"
	InvalidTargetingKey      ErrorKind = "INVALID_TARGETING_KEY"
)

// UserError reports a problem with the inputs. It carries the offending
// module and path when known so callers can serialize the failure.
type UserError struct {
	Kind    ErrorKind
	Message string
	Module  string
	Path    string
}

func (e *UserError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Module != "" {
		msg += fmt.Sprintf(" (module %q)", e.Module)
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" (path %q)", e.Path)
	}
	return msg
}

func Errorf(kind ErrorKind, format string, args ...interface{}) *UserError {
	return &UserError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ModuleErrorf is Errorf with the offending module attached.
func ModuleErrorf(kind ErrorKind, module string, format string, args ...interface{}) *UserError {
	return &UserError{Kind: kind, Message: fmt.Sprintf(format, args...), Module: module}
}

// PathErrorf is Errorf with the offending module and path attached.
func PathErrorf(kind ErrorKind, module, path string, format string, args ...interface{}) *UserError {
	return &UserError{Kind: kind, Message: fmt.Sprintf(format, args...), Module: module, Path: path}
}

// JSON renders the error for machine-readable consumption, e.g. to be
// persisted by a caller next to the build outputs.
func (e *UserError) JSON() []byte {
	out, err := json.Marshal(struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
		Module  string `json:"module,omitempty"`
		Path    string `json:"path,omitempty"`
	}{string(e.Kind), e.Message, e.Module, e.Path})
	if err != nil {
		panic(err)
	}
	return out
}

// AsUserError returns the UserError in err's chain, or nil.
func AsUserError(err error) *UserError {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue
	}
	return nil
}

// InternalError reports a bug or an environment failure rather than a
// problem with the inputs.
type InternalError struct {
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("internal error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("internal error: %s", e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

func InternalErrorf(format string, args ...interface{}) *InternalError {
	return &InternalError{Message: fmt.Sprintf(format, args...)}
}
