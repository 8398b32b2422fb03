// Package save reads and writes saved games.
//
// A save file starts with the line "index turn height width" and is followed
// by one line per board row.
package save

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jaminalder/fitz/internal/domain"
)

// ErrAccess is returned when a save file cannot be opened.
var ErrAccess = errors.New("can't access save file")

// Header line length limits: four single-digit fields at the short end, and
// a three-digit index plus three-digit dimensions at the long end.
const (
	minHeaderLen = 7
	maxHeaderLen = 13
)

// Write encodes s to w.
func Write(w io.Writer, s domain.Snapshot) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %d %d\n", s.TileIndex, s.Turn, s.Height, s.Width)
	for _, row := range s.Rows {
		bw.WriteString(row)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile saves s to path, replacing any existing file.
func WriteFile(path string, s domain.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a snapshot from r. Only the file layout is checked here;
// domain.Restore checks the snapshot against the tile set.
func Read(r io.Reader) (domain.Snapshot, error) {
	var s domain.Snapshot
	data, err := io.ReadAll(r)
	if err != nil {
		return s, fmt.Errorf("%w: %v", ErrAccess, err)
	}
	text := string(data)
	if !strings.HasSuffix(text, "\n") {
		return s, corrupt("missing final newline")
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	header := lines[0]
	if len(header) < minHeaderLen || len(header) > maxHeaderLen {
		return s, corrupt("header length %d", len(header))
	}
	fields := strings.Split(header, " ")
	if len(fields) != 4 {
		return s, corrupt("header has %d fields", len(fields))
	}
	var nums [4]int
	for i, f := range fields {
		if f == "" || strings.TrimLeft(f, "0123456789") != "" {
			return s, corrupt("header field %q", f)
		}
		if nums[i], err = strconv.Atoi(f); err != nil {
			return s, corrupt("header field %q", f)
		}
	}
	s.TileIndex, s.Turn, s.Height, s.Width = nums[0], nums[1], nums[2], nums[3]
	if len(lines)-1 != s.Height {
		return s, corrupt("have %d rows, want %d", len(lines)-1, s.Height)
	}
	s.Rows = lines[1:]
	return s, nil
}

// ReadFile loads a snapshot from path.
func ReadFile(path string) (domain.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", ErrAccess, err)
	}
	defer f.Close()
	return Read(f)
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrCorruptState, fmt.Sprintf(format, args...))
}
