package shell

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version, incremented when the payload format changes.
const historySchemaVersion uint16 = 1

// HistoryEntry is one remembered command.
type HistoryEntry struct {
	Text string
	When time.Time
}

type historyPayload struct {
	Schema  uint16
	Entries []HistoryEntry
}

// History is the on-disk command history, one file per language under the
// user's cache directory. Unreadable files and unknown schemas are
// discarded rather than reported: history is comfort, not state.
type History struct {
	path    string
	limit   int
	entries []HistoryEntry
}

// OpenHistory loads the history store for a language. limit caps the
// number of kept entries; zero keeps everything.
func OpenHistory(lang string, limit int) (*History, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, "glot")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	h := &History{path: filepath.Join(dir, lang+"-history.mp"), limit: limit}
	h.load()
	return h, nil
}

func (h *History) load() {
	f, err := os.Open(h.path)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	var payload historyPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return
	}
	if payload.Schema != historySchemaVersion {
		return
	}
	h.entries = payload.Entries
	h.trim()
}

// Entries returns the remembered commands, oldest first.
func (h *History) Entries() []HistoryEntry {
	return h.entries
}

// Append remembers one command. Blank lines and immediate repeats are
// dropped, matching what line editors do.
func (h *History) Append(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1].Text == text {
		return
	}
	h.entries = append(h.entries, HistoryEntry{Text: text, When: time.Now()})
	h.trim()
}

func (h *History) trim() {
	if h.limit > 0 && len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

// Save writes the store through a temp file and an atomic rename.
func (h *History) Save() error {
	f, err := os.CreateTemp(filepath.Dir(h.path), "tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(f.Name()) }()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(historyPayload{Schema: historySchemaVersion, Entries: h.entries}); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), h.path)
}
