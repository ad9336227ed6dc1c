// Package config provides configuration loading, merging, and validation
// facilities for the clinic client.
//
// Configuration is assembled from multiple sources; earlier sources take
// priority over later ones for every non-zero field:
//  1. Command-line flags (see [RegisterFlags])
//  2. Environment variables
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry point is [GetClientConfig].
package config
