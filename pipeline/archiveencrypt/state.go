// Package archiveencrypt is the concrete, ready-to-run machine ported from
// the original implementation's service/archive_encrypted package: copy a
// source file into a staging area, GPG-encrypt it, move the encrypted copy
// into an archive folder, and clean up the staging/archive artifacts left
// behind by a failed attempt.
//
// The seven working nodes plus the shared report_results terminal are
// wired exactly as archive_encrypted_machine.py declares them; see
// DESIGN.md for the full topology and the Open Question this machine's
// cleanup edges resolved.
package archiveencrypt

import "path/filepath"

// State is the frozen input to one archive-and-encrypt run, grounded on
// state_archive_encrypted.py's StateArchiveEncrypted: every field is set
// once, at construction, and never mutated by a node body.
type State struct {
	// SourcePath is the file to archive.
	SourcePath string
	// StagingDir is where SourcePath is copied before encryption.
	StagingDir string
	// ArchiveDir is where the encrypted file is moved once staged.
	ArchiveDir string
	// GPGKeyName names the recipient key used to encrypt the staged copy.
	GPGKeyName string
}

// stagedPath is where SourcePath lands inside StagingDir.
func (s State) stagedPath() string {
	return filepath.Join(s.StagingDir, filepath.Base(s.SourcePath))
}

// encryptedPath is the GPG output file, staged alongside stagedPath.
func (s State) encryptedPath() string {
	return s.stagedPath() + ".gpg"
}

// archivedPath is where the encrypted file lands once moved into
// ArchiveDir.
func (s State) archivedPath() string {
	return filepath.Join(s.ArchiveDir, filepath.Base(s.encryptedPath()))
}
