// Package registry provides the central glue between markup and Go code.
//
// The Registry stores mappings between the action kinds used in layout
// files (e.g. "navigate") and the compiled Go factories that build their
// invokers. During application startup the registry is populated by the
// action packages and then validated, so a layout referencing a missing or
// malformed action kind fails loudly before anything runs.
package registry
