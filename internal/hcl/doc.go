// Package hcl provides the HCL implementation of the config.Loader interface.
// Each top-level block (or attribute) of a file becomes one section of the
// model. Attribute order follows the source, and `range(...)` calls are kept
// as range expressions for the validators to parse.
package hcl
