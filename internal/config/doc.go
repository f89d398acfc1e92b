// Package config provides configuration loading, merging, and path management for CodeFind.
//
// # Configuration Loading
//
// The Load function searches for and merges configuration from multiple
// sources in priority order:
//
//  1. Global config (~/.codefind/config.json or config.jsonc)
//  2. Project config (.codefind.json or .codefind.jsonc in the working directory)
//  3. Environment variables (CODEFIND_MODEL, CODEFIND_REGION)
//
// Later sources override earlier ones field by field. List-valued settings
// (scrub patterns) accumulate across sources instead of replacing each other.
//
// # Supported Formats
//
// Both JSON and JSONC (JSON with Comments) are accepted; comments are
// stripped with tidwall/jsonc before parsing.
//
// # Variable Interpolation
//
// String values may reference environment variables with {env:VAR_NAME}
// placeholders, substituted at load time. This applies to the settings files
// only, never to the .env files handled by the envfile package.
//
// # Paths
//
// All CodeFind data lives under a single home directory, ~/.codefind by
// default, relocatable with CODEFIND_HOME. The Paths type names the files
// inside it: the OAuth keys env file, the global settings file, and the
// persisted state file.
package config
