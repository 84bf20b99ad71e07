// Package config provides configuration loading, merging, and validation
// facilities for the client and the development backend.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON or YAML config file
//
// Zero fields are then filled from the Default* constants. The entry points
// are [GetClientConfig] and [GetServerConfig].
package config
