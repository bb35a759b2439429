// Package app wires application dependencies for the CLI.
//
// It builds the directory client, snapshot store, trust cache, logger,
// metrics and share service from Config, exposing them via the Wire struct
// for commands to use.
package app
