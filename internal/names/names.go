// Package names provides Docker-style random name generation for droplets.
package names

import (
	"strings"

	"github.com/docker/docker/pkg/namesgenerator"
)

// Generate returns a random adjective-surname name (e.g., "focused-turing").
// Underscores from the upstream generator are replaced with dashes so the
// result is a valid droplet hostname.
func Generate() string {
	return strings.ReplaceAll(namesgenerator.GetRandomName(0), "_", "-")
}
