// Package envfile discovers, orders, and merges .env files into a single
// environment mapping before CodeFind hands control to the model transport.
//
// # Discovery
//
// A Discoverer enumerates candidate file locations across several strategies
// and returns them as one ordered, de-duplicated list. In dynamic mode (the
// default) the strategies run in this order, where later candidates override
// earlier ones during the merge:
//
//  1. The OAuth keys file (~/.codefind/oauth-keys.env), loaded first so that
//     any other file can override it.
//  2. Environment-specific variants (.env.<name>, .env.<name>.local) derived
//     from the NODE_ENV, ENVIRONMENT, or ENV selector, resolved against the
//     working directory, the version-control root, and the home directory.
//  3. Base .env files collected by walking from the working directory up to
//     the version-control root or the filesystem root, nearest directory
//     first. Only directories that actually hold a .env file contribute.
//  4. The standard .env locations: home directory, version-control root,
//     working directory.
//  5. The fixed list of common variants (.env.local, .env.development, ...)
//     against the same three directories.
//  6. The explicit --env-file path, always last, always winning.
//
// Legacy mode (--no-dynamic-env) restricts discovery to the standard .env
// locations plus the explicit file.
//
// Candidates are de-duplicated by canonical absolute path, keeping the first
// occurrence, so no file is ever loaded twice. The explicit file is the one
// exception: it is promoted to the end of the list even when an earlier
// strategy already found it.
//
// # Loading and merging
//
// A Loader processes candidates strictly in rank order, parses each existing
// file with godotenv, and merges the pairs last-write-wins. Loading is
// fail-soft throughout: a missing file, an unreadable file, or a malformed
// line reduces the number of variables loaded but never aborts the run. One
// TraceEntry per candidate records what happened, and FormatTrace renders the
// trace for --env-discovery-verbose output.
//
// Nothing here mutates the process environment; callers apply the merged
// mapping explicitly with Env.Apply, or overlay it on a child process with
// Env.Environ.
package envfile
