// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package database

import "errors"

// ErrNotFound indicates a lookup matched no rows.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate indicates a uniqueness constraint was violated, e.g.
// registering a username or email that already exists.
var ErrDuplicate = errors.New("record already exists")
