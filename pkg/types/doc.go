// Package types defines the core data model shared across codekit: file
// ownership, install and release manifests, merge options and results,
// migration outcomes, and the capability interfaces the engine consumes.
//
// This is a leaf package. It must not import any other codekit package.
package types
