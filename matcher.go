package swiftgrep

import (
	"fmt"
	"strconv"

	"github.com/nullptr-dev/swiftgrep/engine"
)

// MatchFlags controls what a Matcher writes to its OutputSink for every
// match found, independent of how matches are found.
type MatchFlags struct {
	PrintPath    bool // prefix records with "<path>:"
	PrintLine    bool // reconstruct and print the matched line
	PrintOffset  bool // print "Match at offset N"
	SingleMatch  bool // stop after the first match per file (-s)
	CountOnly    bool // suppress records, print a per-file match count (-c)
	Invert       bool // wrap the matched span in ANSI invert escapes
	NulSeparated bool // terminate records with '\0' instead of '\n' (-z)
}

// Matcher is a single worker's private regex-scanning state: one compiled
// engine.Pattern, a chunk size, and a scratch output buffer. It is not
// safe for concurrent use — every walker worker owns exactly one.
type Matcher struct {
	pattern   engine.Pattern
	chunkSize int
	flags     MatchFlags
	sink      *outputSink
	buf       []byte
}

func newMatcher(pattern engine.Pattern, chunkSize int, flags MatchFlags, sink *outputSink) *Matcher {
	return &Matcher{pattern: pattern, chunkSize: chunkSize, flags: flags, sink: sink}
}

// Visit implements fileVisitor, letting the walker drive a Matcher the
// same way it drives any other per-file callback (see metafilter for the
// other implementation).
func (m *Matcher) Visit(dir *dirHandle, name string, st Stat) error {
	return m.ProcessFile(dir, name, st)
}

// ProcessFile scans one regular file, directory entry dir, name within it,
// and already-known stat st, for matches of m.pattern. It is called from
// the walker's scanHandle once per regular file discovered.
func (m *Matcher) ProcessFile(dir *dirHandle, name string, st Stat) error {
	if st.Size == 0 {
		return nil
	}
	minLen := m.pattern.MinLen()
	if minLen > 0 && st.Size < int64(minLen) {
		return nil
	}

	fd, err := openFileAt(dir, name, st.Uid)
	if err != nil {
		return &IOError{Op: "open", Path: joinDisplay(dir.path, name), Err: err}
	}
	defer closeFd(fd)

	path := joinDisplay(dir.path, name)
	count := 0
	var offset int64
	stop := false

	for offset < st.Size && !stop {
		winLen := m.chunkSize
		if remaining := st.Size - offset; int64(winLen) > remaining {
			winLen = int(remaining)
		}

		win, err := mapWindow(fd, offset, winLen)
		if err != nil {
			return &MatchError{Path: path, Err: err}
		}
		block := win.bytes()

		if len(block) > seqAdviseThreshold && !m.flags.SingleMatch {
			adviseSequential(win)
		}

		searchStart := 0
		for len(block)-searchStart >= minLen {
			from, to, found, err := m.pattern.Match(block, searchStart, len(block)-searchStart)
			if err != nil {
				_ = win.unmap()
				return &MatchError{Path: path, Err: err}
			}
			if !found {
				break
			}

			fileOffset := offset + int64(from)

			if m.flags.CountOnly {
				count++
				if m.flags.SingleMatch {
					stop = true
					break
				}
				searchStart = to
				continue
			}

			forwardLen := m.emitRecord(block, path, fileOffset, from, to)
			if m.flags.SingleMatch || (!m.flags.PrintLine && !m.flags.PrintOffset) {
				// Neither print_line nor print_offset means the caller
				// just wants to know the file matched at all: one
				// "matches" record is enough, so stop here rather than
				// rescanning the rest of the file for nothing.
				stop = true
				break
			}
			searchStart = to + forwardLen
		}

		if err := win.unmap(); err != nil {
			return &MatchError{Path: path, Err: err}
		}
		if len(m.buf) > 0 {
			if werr := m.sink.write(m.buf); werr != nil {
				return &IOError{Op: "write", Path: path, Err: werr}
			}
			m.buf = m.buf[:0]
		}

		if stop || winLen < m.chunkSize {
			break
		}
		step := m.chunkSize - windowOverlap
		if step <= 0 {
			step = m.chunkSize
		}
		offset += int64(step)
	}

	if m.flags.CountOnly && count > 0 {
		m.writeCount(path, count)
		if err := m.sink.write(m.buf); err != nil {
			return &IOError{Op: "write", Path: path, Err: err}
		}
		m.buf = m.buf[:0]
	}

	return nil
}

// emitRecord appends one match record to m.buf and returns the number of
// bytes of trailing context it printed past the match, so the caller can
// skip ahead past it: matches that fall entirely inside the printed
// trailing context of a previous match are intentionally not reported
// again, mirroring the original tool's start += to + forward_context_length
// advance.
func (m *Matcher) emitRecord(block []byte, path string, fileOffset int64, from, to int) int {
	term := m.sink.terminator()

	if m.flags.PrintPath {
		m.buf = append(m.buf, path...)
		m.buf = append(m.buf, ':')
	}

	if m.flags.PrintOffset {
		m.buf = append(m.buf, "Match at offset "...)
		m.buf = strconv.AppendInt(m.buf, fileOffset, 10)
		m.buf = append(m.buf, term)
	}

	if m.flags.PrintLine {
		lineStart := from
		for i := 0; i < maxContextBytes && lineStart > 0 && block[lineStart-1] != '\n'; i++ {
			lineStart--
		}
		lineEnd := to
		for i := 0; i < maxContextBytes && lineEnd < len(block) && block[lineEnd] != '\n'; i++ {
			lineEnd++
		}

		m.buf = append(m.buf, block[lineStart:from]...)
		if m.flags.Invert {
			m.buf = append(m.buf, invertStart...)
		}
		m.buf = append(m.buf, block[from:to]...)
		if m.flags.Invert {
			m.buf = append(m.buf, invertEnd...)
		}
		m.buf = append(m.buf, block[to:lineEnd]...)
		m.buf = append(m.buf, term)
		return lineEnd - to
	}

	if !m.flags.PrintOffset {
		m.buf = append(m.buf, "matches"...)
		m.buf = append(m.buf, term)
	}
	return 0
}

func (m *Matcher) writeCount(path string, count int) {
	if m.flags.PrintPath {
		m.buf = append(m.buf, path...)
		m.buf = append(m.buf, ':', ' ')
	}
	m.buf = append(m.buf, fmt.Sprintf("%d", count)...)
	m.buf = append(m.buf, m.sink.terminator())
}
