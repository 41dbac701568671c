package browser

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

var sqliteMagic = []byte("SQLite format 3\x00")

// DetectFormat inspects the file at path and reports which cookie store
// layout it holds.
func DetectFormat(path string) (Format, error) {
	if err := checkStoreFile(path); err != nil {
		return FormatUnknown, err
	}
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("open cookie store: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return FormatUnknown, fmt.Errorf("read cookie store: %w", err)
	}
	head = head[:n]

	if bytes.HasPrefix(head, sqliteMagic) {
		return detectSchema(path)
	}
	first, _, _ := strings.Cut(string(head), "\n")
	first = strings.TrimRight(first, "\r")
	if first == netscapeHeader || first == netscapeAltHeader {
		return FormatNetscape, nil
	}
	return FormatUnknown, fmt.Errorf("unsupported cookie store format: %s", path)
}

func detectSchema(path string) (Format, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return FormatUnknown, fmt.Errorf("open SQLite cookie store: %w", err)
	}
	defer db.Close()

	for _, schema := range []struct {
		table  string
		format Format
	}{
		{"moz_cookies", FormatFirefox},
		{"cookies", FormatChrome},
	} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, schema.table).Scan(&name)
		if err == nil {
			return schema.format, nil
		}
		if err != sql.ErrNoRows {
			return FormatUnknown, fmt.Errorf("inspect SQLite cookie store: %w", err)
		}
	}
	return FormatUnknown, fmt.Errorf("unsupported SQLite cookie schema: %s", path)
}

func checkStoreFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cookie store not found: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cookie store %s is a directory", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("cookie store %s is empty", path)
	}
	return nil
}
