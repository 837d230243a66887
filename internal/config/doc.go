// Package config defines the format-agnostic model of a time-domain
// configuration document, along with the Loader interface that concrete
// formats implement.
//
// The `config.Model` is the single input of the `modeldata` builder. Loaders
// for YAML/JSON and HCL live in separate packages and are selected by file
// extension through a Dispatcher.
package config
