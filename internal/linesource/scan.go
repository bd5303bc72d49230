package linesource

import (
	"bufio"
	"context"
	"os"

	"github.com/cockroachdb/errors"
)

// maxLineSize bounds a single history line.
const maxLineSize = 1024 * 1024

// Scan reads path from the start and calls fn for every line until fn
// returns false, the file ends or ctx is done.
func Scan(ctx context.Context, path string, fn func(line string) bool) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "failed to open game log for scan")
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	n := 0
	for sc.Scan() {
		n++
		if n%1000 == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		if !fn(cleanLine(sc.Text())) {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "failed to scan game log")
	}
	return nil
}
