// SPDX-License-Identifier: MIT

package problemfile

import "errors"

var (
	// ErrMalformed indicates a problem file that cannot be decoded.
	ErrMalformed = errors.New("problemfile: malformed problem")

	// ErrUnknownName indicates a reference to an undeclared dimension.
	ErrUnknownName = errors.New("problemfile: unknown dimension name")

	// ErrDuplicateName indicates a dimension declared twice.
	ErrDuplicateName = errors.New("problemfile: duplicate dimension name")

	// ErrWrongKind indicates a file of one kind converted to the other
	// kind of problem.
	ErrWrongKind = errors.New("problemfile: wrong problem kind")

	// ErrBadAssignment indicates a parameter assignment that cannot be parsed.
	ErrBadAssignment = errors.New("problemfile: bad parameter assignment")

	// ErrBadConfig indicates a configuration value outside its declared set.
	ErrBadConfig = errors.New("problemfile: bad configuration")
)
