// In file: internal/version/version.go

// Package version centralizes the versioning for different logical components
// of the assistant.
//
// By including these version strings in cache keys, old cached replies are
// automatically invalidated whenever a piece of underlying logic changes. For
// example, fixing a bug in a tool and bumping Tools from "v1.0" to "v1.1"
// means every old key stops matching and fresh replies get generated.
package version

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComponentVersions holds the version strings for the logical parts of the
// application. Manually increment a version before deploying a change to that
// component.
var ComponentVersions = struct {
	// Tools covers the tool implementations (calculator, weather, arXiv).
	Tools string
	// Rules covers the router's rule tables and the normalizer pipeline.
	Rules string
	// Prompt covers the function-calling instruction template.
	Prompt string
}{
	Tools:  "v1.0",
	Rules:  "v1.0",
	Prompt: "v1.0",
}

// GenerateVersionedCacheKey creates a consistent, version-aware key for
// caching replies. It combines a prefix, a hash of the utterance, and the
// current component versions, so changing either the input or any underlying
// logic produces a different key.
//
// Example output: "reply:a1b2c3d4...:tv1.0_rv1.0_pv1.0"
func GenerateVersionedCacheKey(prefix, utterance string) string {
	hasher := sha256.New()
	hasher.Write([]byte(utterance))
	hash := hex.EncodeToString(hasher.Sum(nil))

	versions := fmt.Sprintf("tv%s_rv%s_pv%s",
		ComponentVersions.Tools,
		ComponentVersions.Rules,
		ComponentVersions.Prompt,
	)
	return fmt.Sprintf("%s:%s:%s", prefix, hash, versions)
}
