// SPDX-License-Identifier: MIT
// Package pivot: sentinel error set.

package pivot

import (
	"context"
	"errors"
	"fmt"
)

// ErrAbandoned is returned, wrapped together with the context error, when a
// solve is cancelled. The solver state stays as it was before the call.
var ErrAbandoned = errors.New("pivot: computation abandoned")

// Poll returns a wrapped ErrAbandoned once ctx is done, nil otherwise.
// A nil ctx never abandons.
func Poll(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrAbandoned, err)
	}

	return nil
}
