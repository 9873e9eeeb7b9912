package lint

import (
	"context"

	"github.com/yaklabco/htmlindent/pkg/markup"
)

// Parser turns file content into a markup.Document.
//
// Implementations must be:
//   - deterministic for a given (path, content) pair,
//   - safe for concurrent use by multiple goroutines, if documented as such,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw bytes into a Document.
	//
	// The returned Document must satisfy:
	//   - doc.Path == path
	//   - bytes.Equal(doc.Content, content)
	//   - doc.Root != nil when doc.Host == markup.HostMarkup
	//
	// On error, no partial document is returned.
	Parse(ctx context.Context, path string, content []byte) (*markup.Document, error)
}
