// Package fasta loads a protein database from FASTA into an ordered
// identifier→sequence mapping. Insertion order is preserved; it is the
// scan order used by the annotator.
package fasta

import (
	"bufio"
	"io"
	"strings"
)

// Database is an ordered id→sequence mapping. A duplicate identifier
// keeps its original position but takes the last sequence seen
// (last-wins, an explicit contract with upstream FASTA producers).
type Database struct {
	IDs []string
	Seq map[string]string
}

// Len returns the number of distinct protein identifiers.
func (db *Database) Len() int { return len(db.IDs) }

// add appends or overwrites one record.
func (db *Database) add(id, seq string) {
	if _, dup := db.Seq[id]; !dup {
		db.IDs = append(db.IDs, id)
	}
	db.Seq[id] = seq
}

// Read parses FASTA from r. The identifier is the first
// whitespace-delimited token after '>'; multi-line sequence data is
// concatenated.
func Read(r io.Reader) (*Database, error) {
	db := &Database{Seq: make(map[string]string)}

	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		id      string
		haveRec bool
		seq     strings.Builder
	)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if haveRec {
				db.add(id, seq.String())
			}
			header := strings.TrimPrefix(line, ">")
			if fields := strings.Fields(header); len(fields) > 0 {
				id = fields[0]
			} else {
				id = ""
			}
			haveRec = true
			seq.Reset()
			continue
		}
		if haveRec {
			seq.WriteString(line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if haveRec {
		db.add(id, seq.String())
	}
	return db, nil
}

// ReadPath reads a FASTA file; gzip input is detected by magic number
// or .gz suffix, and "-" means stdin.
func ReadPath(path string) (*Database, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return Read(rc)
}
