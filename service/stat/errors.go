// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package stat

import (
	"errors"
)

var (
	// ErrInvalidArgument is returned for caller supplied values outside of
	// their accepted domain. It is never silently corrected.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAlgorithmicGap signals an internal invariant violation, such as a
	// Pearson classification that matched no branch.
	ErrAlgorithmicGap = errors.New("algorithmic gap")
)
