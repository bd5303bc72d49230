// Package linesource reads the game log: a live tail for new lines and a
// one-shot scan of the existing history.
package linesource

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// SentinelPrefix starts the line pushed when the tail stops on an error.
const SentinelPrefix = "[ERROR] "

var (
	// ErrFatal marks errors the process cannot recover from.
	ErrFatal = errors.New("fatal line source error")
	// ErrLogMissing is returned when the game log does not exist.
	ErrLogMissing = errors.New("game log not found")
)

// IsFatal reports whether err was marked fatal by this package.
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatal)
}

// CheckLog verifies the game log exists and is a regular file.
func CheckLog(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Wrapf(ErrLogMissing, "%s", path)
			err = errors.WithHintf(err, "start the game once, or point tail.gameLog (or --game-log) at Game.log")
			return errors.Mark(err, ErrFatal)
		}
		return errors.Mark(errors.Wrap(err, "failed to stat game log"), ErrFatal)
	}
	if info.IsDir() {
		err := errors.Newf("%s is a directory", path)
		return errors.Mark(errors.WithHint(err, "tail.gameLog must name the Game.log file"), ErrFatal)
	}
	return nil
}

// sentinel is the line the consumer sees when the tail stops.
func sentinel(err error) string {
	return SentinelPrefix + "Tail thread stopped: " + err.Error()
}

// cleanLine strips the line terminator and drops invalid UTF-8.
func cleanLine(s string) string {
	s = strings.TrimRight(s, "\r\n")
	return strings.ToValidUTF8(s, "")
}
