package domain

// ResolvedEntry is the result of resolving one file selector: the suite that
// contains the spec and the spec's path as the server knows it.
type ResolvedEntry struct {
	Suite string `json:"suite"`
	Path  string `json:"path"`
}

// SpecFile is a spec discovered inside a suite root
type SpecFile struct {
	Suite string // Suite the spec belongs to
	Path  string // Project-relative path, forward slashes
	Name  string // Just the filename
}
