// Package file provides file-based configuration adapters: TOML
// settings under the corrag config directory and user-editable prompt
// templates with live reload.
package file
