// Package archive reads and writes capsule zip files.
//
// Entries are named with forward slashes relative to a caller-chosen base
// directory. Directories are stored as explicit entries so empty
// directories survive a round trip. The compression method is recorded per
// entry, so readers need no configuration.
package archive
