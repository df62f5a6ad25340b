// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// Version is overridden at build time via -ldflags
var Version = "develop"

// Require checks the running amark against a version constraint (e.g. ">= 0.2, < 1.0").
// Development builds satisfy every valid constraint.
func Require(constraint string) error {
	userConstraint, err := goversion.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("Parsing version constraint '%s': %s", constraint, err)
	}

	if Version == "develop" {
		return nil
	}

	amarkVersion, err := goversion.NewVersion(Version)
	if err != nil {
		return fmt.Errorf("Parsing amark version '%s': %s", Version, err)
	}

	if !userConstraint.Check(amarkVersion) {
		return fmt.Errorf("amark version %s does not meet the required version %s", Version, constraint)
	}

	return nil
}
