// Package version reports build information for the genrun binary.
//
// Values come from -ldflags when set:
//
//	go build -ldflags "-X github.com/kbukum/xgen/version.Version=0.3.0" ./cmd/genrun
//
// and otherwise from the VCS stamps the Go toolchain embeds.
package version
