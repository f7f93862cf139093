// Package pagination slices, sorts and describes launch listings for the
// non-interactive list command.
//
// Two mutually exclusive modes are supported:
//   - offset-based: --limit and --offset
//   - page-based: --page and --page-size
//
// Results carry a Meta block so JSON consumers can page through them.
package pagination
