// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Kravets

// Package validators enforces business rules on user-editable records before
// they enter a synced collection. Validation lives outside the sync engine so
// the same rules apply regardless of which consumer performs the edit.
package validators

import "context"

// Validator validates arbitrary input values. Passing field names restricts
// validation to those fields; with none given, all fields are checked.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
