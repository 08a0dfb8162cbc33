package manifest

import (
	"fmt"

	aprilversion "github.com/aosc-dev/april-go/internal/version"
)

// SelectCompatible evaluates each document's compatible_versions expression
// against targetVersion (and, if the expression uses a sha256sum(...)
// predicate, contentDigest) and returns the first match, in document order.
// A document with an empty compatible_versions expression is treated as
// unconditionally compatible, so a single-document manifest with no
// expression always matches.
func SelectCompatible(docs []*Manifest, targetVersion string, contentDigest []byte) (*Manifest, error) {
	for _, doc := range docs {
		if doc.CompatibleVersions == "" {
			return doc, nil
		}
		ok, err := aprilversion.Check(doc.CompatibleVersions, targetVersion, contentDigest)
		if err != nil {
			return nil, fmt.Errorf("evaluating compatible_versions %q for manifest %q: %w", doc.CompatibleVersions, doc.Name, err)
		}
		if ok {
			return doc, nil
		}
	}
	return nil, fmt.Errorf("no manifest document is compatible with version %q", targetVersion)
}
