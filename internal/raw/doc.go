// Package raw models loosely-typed configuration values as they come out of a
// YAML or HCL document, before any validation has been applied.
//
// A Value is an immutable tagged union. Loaders build Values, validators
// inspect them through Kind and Classify and never see format-specific types.
package raw
