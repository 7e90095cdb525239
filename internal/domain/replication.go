package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CopyStrategy - the algorithm used for one replication request
type CopyStrategy int

const (
	SmallFileCopy CopyStrategy = iota
	MemoryMappedFanOut
	ChunkedStreamingFanOut
	ZeroCopyFanOut
)

func (s CopyStrategy) String() string {
	switch s {
	case SmallFileCopy:
		return "small_file_copy"
	case MemoryMappedFanOut:
		return "memory_mapped_fan_out"
	case ChunkedStreamingFanOut:
		return "chunked_streaming_fan_out"
	case ZeroCopyFanOut:
		return "zero_copy_fan_out"
	default:
		return "unknown"
	}
}

// ReplicationRequest - one "replicate source into dest N times" call
type ReplicationRequest struct {
	SourcePath string
	DestDir    string
	Count      int
	Quiet      bool // suppress progress bars
}

// TemplateRequest - a replication request with placeholder substitution
type TemplateRequest struct {
	ReplicationRequest
	Placeholder string
}

// Shard - the half-open range [Start, Start+Size) of copy indices owned by one worker
type Shard struct {
	Start int
	Size  int
}

// End returns the exclusive upper bound of the shard.
func (s Shard) End() int {
	return s.Start + s.Size
}

// NamingScheme derives destination paths from a source base name and a copy
// index, producing "{name}_{infix}{i}{ext}".
type NamingScheme struct {
	Dir   string
	Name  string
	Ext   string
	Infix string
}

// CopyNaming returns the "{base}_copy{i}{ext}" scheme for plain replication.
func CopyNaming(sourcePath, destDir string) NamingScheme {
	return newNaming(sourcePath, destDir, "copy")
}

// TemplateNaming returns the "{base}_{i}{ext}" scheme for templated replication.
func TemplateNaming(sourcePath, destDir string) NamingScheme {
	return newNaming(sourcePath, destDir, "")
}

func newNaming(sourcePath, destDir, infix string) NamingScheme {
	base := filepath.Base(sourcePath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	// dotfiles such as ".profile" have no extension, only a name
	if name == "" || strings.Trim(name, ".") == "" {
		name, ext = base, ""
	}
	return NamingScheme{Dir: destDir, Name: name, Ext: ext, Infix: infix}
}

// Path returns the destination path for copy index i.
func (n NamingScheme) Path(i int) string {
	return filepath.Join(n.Dir, fmt.Sprintf("%s_%s%d%s", n.Name, n.Infix, i, n.Ext))
}

// Paths returns the destination paths for indices [start, end).
func (n NamingScheme) Paths(start, end int) []string {
	paths := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		paths = append(paths, n.Path(i))
	}
	return paths
}
