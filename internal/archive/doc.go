// Package archive implements the create-and-verify pipeline for
// password-protected encrypted archives.
//
// A Builder streams a file or directory tree into a WinZip-AES-256 encrypted
// zip at a staging path, the Pipeline commits the staging artifact onto its
// final name with a single atomic rename, and a Verifier proves the committed
// archive is both structurally sound and actually extractable before the run
// is reported as a success.
package archive
