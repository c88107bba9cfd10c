// Package pathutil provides pure, filesystem-free POSIX path manipulation
// used throughout codemap to keep import resolution deterministic across
// host operating systems.
//
// Description:
//
//	Every function here operates on plain strings and never touches disk.
//	This is deliberate: the scanner and differ rebuild module dependency
//	edges by joining and normalizing relative paths, and that resolution
//	must produce byte-identical results on Linux, macOS, and Windows.
package pathutil

import "strings"

// StripExtension removes the file extension from a POSIX-style path.
//
// Description:
//
//	Finds the last '.' in p and removes it along with everything after it,
//	but only if that dot occurs after the last '/' — i.e. the dot belongs
//	to the filename, not to a directory component. A path with no such
//	dot is returned unchanged.
//
// Example:
//
//	StripExtension("src/auth/login.ts") == "src/auth/login"
//	StripExtension("src.d/login") == "src.d/login"
func StripExtension(p string) string {
	slash := strings.LastIndex(p, "/") + 1
	dot := strings.LastIndex(p, ".")
	if dot > slash {
		return p[:dot]
	}
	return p
}

// PosixDirname returns the directory portion of a POSIX-style path.
//
// Description:
//
//	Returns the substring before the last '/'. A leading-slash path
//	returns "/"; a path with no '/' returns ".".
func PosixDirname(p string) string {
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return "."
	}
	if idx == 0 {
		return "/"
	}
	return p[:idx]
}

// PosixNormalize collapses "." and ".." segments in a '/'-separated path.
//
// Description:
//
//	Splits on '/', discards empty and "." segments, and pops the last
//	kept segment whenever a ".." segment is encountered (a leading ".."
//	with nothing to pop is simply dropped, since codemap never resolves
//	above the project root). The remaining segments are rejoined with
//	'/'.
func PosixNormalize(p string) string {
	parts := strings.Split(p, "/")
	kept := make([]string, 0, len(parts))
	for _, seg := range parts {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(kept) > 0 {
				kept = kept[:len(kept)-1]
			}
		default:
			kept = append(kept, seg)
		}
	}
	return strings.Join(kept, "/")
}

// NormalizePath converts host-OS path separators to forward slashes and
// applies PosixNormalize.
//
// Description:
//
//	All paths stored in the code graph are POSIX-style regardless of the
//	host OS (spec §3). This is the single conversion point: callers pass
//	whatever `filepath.Join`/`filepath.Rel` produced and get back a
//	canonical, normalized forward-slash path.
func NormalizePath(osPath string) string {
	return PosixNormalize(strings.ReplaceAll(osPath, "\\", "/"))
}
