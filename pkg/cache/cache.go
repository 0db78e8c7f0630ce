// Package cache provides the artifact cache for rendered map documents.
//
// Rendering a report means reading shapefiles, composing SVG, and shelling
// out to rsvg-convert; the cache keys finished artifacts by everything that
// influences the output so unchanged inputs skip all of that.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources.
	Close() error
}

// ArtifactKeyOpts are the render options that influence an artifact's bytes.
type ArtifactKeyOpts struct {
	Format       string   `json:"format"`
	DPI          int      `json:"dpi"`
	Subdivisions []string `json:"subdivisions,omitempty"`
}

// Keyer generates cache keys for render artifacts.
type Keyer interface {
	// ArtifactKey keys one output artifact by the primary input content
	// hash, the layout document hash, and the render options.
	ArtifactKey(inputHash, layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generation strategy.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey generates a key in the form "artifact:hash(...)".
func (k *DefaultKeyer) ArtifactKey(inputHash, layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, layoutHash, opts)
}
