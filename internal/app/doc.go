// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the validation and history workflows,
// decoupled from any specific entrypoint like a CLI.
package app
