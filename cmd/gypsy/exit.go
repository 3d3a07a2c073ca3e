/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

// exitError pairs an internal gypsy.ERR_* kind with the error that
// caused it. The shell only ever sees exit code 1 (spec 6: "0 success; 1
// for any failure") - code is kept for callers (tests, --verbose
// logging) that want to know which failure kind fired without string-
// matching the message.
type exitError struct {
	code int
	err  error
}

func newExitError(code int, err error) error {
	return &exitError{code: code, err: err}
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// exitCodeFor maps any error returned from RunE to a process exit
// status. Every failure kind this engine produces exits 1.
func exitCodeFor(err error) int {
	return 1
}
