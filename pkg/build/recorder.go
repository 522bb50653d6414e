// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package build

import (
	"strings"

	"gitlab.com/sorobanclient/soroban-go/pkg/errors"
)

// Errors joins the errors recorded by a builder.
type Errors []error

func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var errs []string
	for _, err := range e {
		errs = append(errs, err.Error())
	}
	return strings.Join(errs, "; ")
}

type recorder struct {
	errs []error
}

func (r *recorder) ok() bool {
	return len(r.errs) == 0
}

func (r *recorder) err() error {
	switch len(r.errs) {
	case 0:
		return nil
	case 1:
		return r.errs[0]
	default:
		return Errors(r.errs)
	}
}

func (r *recorder) record(err ...error) {
	errs := make([]error, 0, len(r.errs)+len(err))
	errs = append(errs, r.errs...)
	errs = append(errs, err...)
	r.errs = errs
}

func (r *recorder) errorf(code errors.Status, format string, args ...interface{}) {
	r.record(code.Skip(1).WithFormat(format, args...))
}
