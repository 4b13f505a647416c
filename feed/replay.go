package feed

import (
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/xyproto/unzip"

	"github.com/alun/pai/ledger"
)

// Replay applies every deal from r to the ledger and returns how many it
// applied. It stops at the first bad row or unmatched close.
func Replay(l *ledger.Ledger, r *Reader) (int, error) {
	n := 0
	for {
		d, ok, err := r.Next()
		if err != nil {
			return n, err
		}
		if !ok {
			return n, nil
		}
		if err := l.Apply(d); err != nil {
			return n, fmt.Errorf("row %d: %w", r.line, err)
		}
		n++
	}
}

// ReplayFile replays deals from path into the ledger. Plain, .xz and .gz
// compressed CSVs are read directly; a .zip archive is extracted and its
// deal files are replayed in lexical name order, so numbered statement
// exports play back in sequence.
func ReplayFile(l *ledger.Ledger, path string) (int, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return replayZip(l, path)
	}
	return replayPlain(l, path)
}

func replayPlain(l *ledger.Ledger, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xz":
		xr, err := xz.NewReader(f)
		if err != nil {
			return 0, fmt.Errorf("xz reader: %w", err)
		}
		r = xr
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return 0, fmt.Errorf("gzip reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	return Replay(l, NewReader(r))
}

func replayZip(l *ledger.Ledger, path string) (int, error) {
	dir, err := os.MkdirTemp("", "pai-deals-*")
	if err != nil {
		return 0, err
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(path, dir); err != nil {
		return 0, fmt.Errorf("extract %s: %w", path, err)
	}

	var files []string
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isDealFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("no deal files in %s", path)
	}

	sort.Strings(files)

	total := 0
	for _, fp := range files {
		n, err := replayPlain(l, fp)
		total += n
		if err != nil {
			return total, fmt.Errorf("%s: %w", filepath.Base(fp), err)
		}
	}
	return total, nil
}

func isDealFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.HasSuffix(base, ".csv") ||
		strings.HasSuffix(base, ".csv.xz") ||
		strings.HasSuffix(base, ".csv.gz")
}
