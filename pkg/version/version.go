// Package version provides the loctree tool version. The snapshot schema
// constants live in pkg/types.
package version

// Version is the loctree CLI version.
// Can be overridden at build time with:
//   go build -ldflags "-X github.com/loctree/loctree-go/pkg/version.Version=2.0.1"
var Version = "dev"
