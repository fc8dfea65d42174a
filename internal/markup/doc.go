// Package markup turns layout files into a live visual tree. It parses HCL
// layouts into the schema package's block structs, builds pages, elements
// and behaviors from them, and evaluates action declarations into live
// bindings through the registry.
//
// Loading is strict: unknown action kinds, duplicate ids, malformed blocks
// and unsupported binding targets are configuration errors that abort the
// load. Page content is built detached and only then added to its page, so
// nested actions resolve their page through the attachment callback exactly
// as runtime-instantiated template content does.
package markup
