// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML configuration in ~/.estateflow/config.toml, with
//     Watch to pick up edits made while the program runs
package file
