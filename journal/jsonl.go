package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSONL writes entries as JSON Lines, one entry per line.
func WriteJSONL(w io.Writer, entries []*Entry) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("encode entry %d: %w", e.Seq, err)
		}
	}
	return bw.Flush()
}

// ReadJSONL parses entries from a JSON Lines stream. Blank lines are
// skipped.
func ReadJSONL(r io.Reader) ([]*Entry, error) {
	var out []*Entry
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", lineNum, err)
		}
		out = append(out, &e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stream: %w", err)
	}
	return out, nil
}

// ReadJSONLFile parses entries from a JSONL file.
func ReadJSONLFile(path string) ([]*Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	return ReadJSONL(f)
}
