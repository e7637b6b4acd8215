package source

import (
	"context"
	"strings"
	"sync"

	"github.com/minio/highwayhash"
)

// hashKey is an arbitrary but fixed 32-byte key for HighwayHash. The
// Manager only ever uses the digest to detect identical re-registration
// of the same path (see Register), never as a security boundary, so a
// fixed key is sufficient and keeps digests reproducible across runs.
var hashKey = make([]byte, 32)

// file is one registered source buffer.
type file struct {
	path   string
	text   string
	digest string // hex-free raw HighwayHash digest, compared byte-for-byte
	lines  []int  // byte offset of the start of each line (1-based indexing via lines[lineNo-1])
}

// Manager assigns stable, monotonically increasing file IDs to source
// buffers, owns their text, and maps (file,line,col) to byte offsets and
// back. Registration is append-only; lookups are pure. See spec §4.1.
type Manager struct {
	mu    sync.RWMutex
	files []*file          // index 0 is always invalidFileID sentinel
	byURL map[string]FileID
}

// New creates an empty Manager. Index 0 in the internal slice is reserved
// so that a zero-value FileID (invalidFileID) never resolves to a file.
func New() *Manager {
	return &Manager{
		files: []*file{nil},
		byURL: make(map[string]FileID),
	}
}

// Register records source text under path and returns its FileID.
// Registering the same path with byte-identical content returns the same
// FileID (the §8 round-trip property); registering the same path with
// different content assigns a new FileID, since the manager never
// silently discards a caller's updated buffer.
func (m *Manager) Register(path string, text string) FileID {
	digest := string(highwayhash.Sum([]byte(text), hashKey))

	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.byURL[path]; ok {
		existing := m.files[id]
		if existing.digest == digest {
			return id
		}
	}

	f := &file{path: path, text: text, digest: digest, lines: computeLineOffsets(text)}
	id := FileID(len(m.files))
	m.files = append(m.files, f)
	m.byURL[path] = id
	return id
}

// Load fetches path through reader and registers the result. A missing
// file surfaces as *NotFoundError, the one fatal I/O failure mode named
// in spec §6.
func (m *Manager) Load(ctx context.Context, reader Reader, path string) (FileID, error) {
	b, err := reader.DownloadWithURL(ctx, path)
	if err != nil {
		return invalidFileID, err
	}
	return m.Register(path, string(b)), nil
}

// Path returns the path a file was registered under, or "" if id is
// unknown.
func (m *Manager) Path(id FileID) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if f := m.get(id); f != nil {
		return f.path
	}
	return ""
}

// Text returns the full registered source text for id, or "" if unknown.
func (m *Manager) Text(id FileID) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if f := m.get(id); f != nil {
		return f.text
	}
	return ""
}

// Line returns the 1-based line's text (no trailing newline). Out-of-range
// requests yield "" rather than a fatal error, per spec §4.1.
func (m *Manager) Line(id FileID, lineNo int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f := m.get(id)
	if f == nil || lineNo < 1 || lineNo > len(f.lines) {
		return ""
	}
	start := f.lines[lineNo-1]
	end := len(f.text)
	if lineNo < len(f.lines) {
		end = f.lines[lineNo] - 1 // exclude the newline
	}
	if end > len(f.text) {
		end = len(f.text)
	}
	if end < start {
		return ""
	}
	return strings.TrimRight(f.text[start:end], "\r")
}

func (m *Manager) get(id FileID) *file {
	if int(id) <= 0 || int(id) >= len(m.files) {
		return nil
	}
	return m.files[id]
}

func computeLineOffsets(text string) []int {
	offsets := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
