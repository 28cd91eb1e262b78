/*
MIT License

# Copyright (c) 2025 OcomSoft

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/
package errors

import "fmt"

// Common error types for the mitre migration engine.

type ConfigError struct {
	Path    string
	Message string
}

func (e ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config error in %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

type MissingStateStoreConfigError struct{}

func (e MissingStateStoreConfigError) Error() string {
	return "config error: no \"mitre\" configuration block found (state store is mandatory)"
}

type DiscoveryError struct {
	Kind              string // DuplicateVersion, MalformedCandidate, MixedChangeAndUpDown, UnknownConfigurationName, UnacceptedExtension, ReservedWordAsTag
	Version           uint64
	Path              string
	ConfigurationName string
	Message           string
}

func (e DiscoveryError) Error() string {
	return fmt.Sprintf("discovery error (%s) at version=%d path=%q configuration_name=%q: %s",
		e.Kind, e.Version, e.Path, e.ConfigurationName, e.Message)
}

type TemplateError struct {
	Path    string
	Message string
}

func (e TemplateError) Error() string {
	return fmt.Sprintf("template error in %s: %s", e.Path, e.Message)
}

type StateStoreError struct {
	Operation string
	Message   string
}

func (e StateStoreError) Error() string {
	return fmt.Sprintf("state store error during %s: %s", e.Operation, e.Message)
}

type RunnerError struct {
	Version           uint64
	Path              string
	ConfigurationName string
	Message           string
}

func (e RunnerError) Error() string {
	return fmt.Sprintf("runner error at version=%d path=%q configuration_name=%q: %s",
		e.Version, e.Path, e.ConfigurationName, e.Message)
}

type ReconciliationWarning struct {
	Version uint64
	Message string
}

func (e ReconciliationWarning) Error() string {
	return fmt.Sprintf("reconciliation warning at version=%d: %s", e.Version, e.Message)
}

// Constructors mirror the field shape of each error so callers wrap
// consistently with %w rather than reaching for errors.New.

func NewConfigError(path, message string) error {
	return ConfigError{Path: path, Message: message}
}

func NewDiscoveryError(kind string, version uint64, path, configurationName, message string) error {
	return DiscoveryError{Kind: kind, Version: version, Path: path, ConfigurationName: configurationName, Message: message}
}

func NewTemplateError(path, message string) error {
	return TemplateError{Path: path, Message: message}
}

func NewStateStoreError(operation, message string) error {
	return StateStoreError{Operation: operation, Message: message}
}

func NewRunnerError(version uint64, path, configurationName, message string) error {
	return RunnerError{Version: version, Path: path, ConfigurationName: configurationName, Message: message}
}

func NewReconciliationWarning(version uint64, message string) error {
	return ReconciliationWarning{Version: version, Message: message}
}

// Utility functions for error-type checking, mirroring the teacher's
// Is<Kind>Error helpers.

func IsConfigError(err error) bool {
	_, ok := err.(ConfigError)
	return ok
}

func IsMissingStateStoreConfigError(err error) bool {
	_, ok := err.(MissingStateStoreConfigError)
	return ok
}

func IsDiscoveryError(err error) bool {
	_, ok := err.(DiscoveryError)
	return ok
}

func IsTemplateError(err error) bool {
	_, ok := err.(TemplateError)
	return ok
}

func IsStateStoreError(err error) bool {
	_, ok := err.(StateStoreError)
	return ok
}

func IsRunnerError(err error) bool {
	_, ok := err.(RunnerError)
	return ok
}

func IsReconciliationWarning(err error) bool {
	_, ok := err.(ReconciliationWarning)
	return ok
}
