package lexer

import (
	"bytes"
	"io"
	"strings"

	"github.com/pattyshack/gt/parseutil"
)

const (
	initialPeekWindowSize = 64
)

// LineReader splits a location-tracking byte stream into whitespace-separated
// fields, one line at a time.  Blank lines are skipped.
type LineReader struct {
	parseutil.BufferedByteLocationReader
}

func NewLineReader(reader parseutil.BufferedByteLocationReader) *LineReader {
	return &LineReader{
		BufferedByteLocationReader: reader,
	}
}

func (reader *LineReader) CurrentLocation() parseutil.Location {
	return reader.Location
}

// Next returns the fields of the next non-blank line along with the line's
// position.  Returns io.EOF once the stream is exhausted.
func (reader *LineReader) Next() ([]string, parseutil.StartEndPos, error) {
	for {
		line, pos, err := reader.readLine()
		if err != nil {
			return nil, parseutil.StartEndPos{}, err
		}

		fields := strings.Fields(line)
		if len(fields) > 0 {
			return fields, pos, nil
		}
	}
}

func (reader *LineReader) readLine() (string, parseutil.StartEndPos, error) {
	peekSize := initialPeekWindowSize
	for {
		peeked, err := reader.Peek(peekSize)
		if len(peeked) > 0 && err == io.EOF {
			err = nil
		}
		if err != nil {
			return "", parseutil.StartEndPos{}, err
		}

		lineLength := bytes.IndexByte(peeked, '\n')
		if lineLength < 0 {
			if len(peeked) == peekSize {
				peekSize *= 2
				continue
			}
			lineLength = len(peeked) // last line without trailing newline
		}

		line := string(peeked[:lineLength])

		start := reader.Location
		_, err = reader.Discard(lineLength)
		if err != nil {
			panic("should never happen")
		}
		end := reader.Location

		if lineLength < len(peeked) { // consume the newline
			_, err = reader.Discard(1)
			if err != nil {
				panic("should never happen")
			}
		}

		return strings.TrimRight(line, "\r"), parseutil.NewStartEndPos(start, end), nil
	}
}
