package metafilter

import (
	"context"
	"path/filepath"

	"github.com/nullptr-dev/swiftgrep"
)

// Filter implements swiftgrep.Visitor, testing every regular file the
// walker hands it against a Predicate and printing the ones that match.
// One Filter is built per walker worker by the factory passed to Run, the
// same shape swiftgrep.Matcher uses for the regex side.
type Filter struct {
	pred Predicate
	sink *swiftgrep.Sink
}

// NewFilter builds a Filter that writes matching paths to sink.
func NewFilter(pred Predicate, sink *swiftgrep.Sink) *Filter {
	return &Filter{pred: pred, sink: sink}
}

// Visit implements swiftgrep.Visitor. It prints "<dirname>/<basename>\n"
// (or NUL-terminated, depending on the sink) for every file whose stat
// and basename satisfy the predicate, and leaves non-matches silent.
func (f *Filter) Visit(path string, st swiftgrep.Stat) error {
	if !f.pred.Match(filepath.Base(path), st) {
		return nil
	}
	record := append([]byte(path), f.sink.Terminator())
	return f.sink.Write(record)
}

// Run walks every root applying pred, writing one line per match to
// sink. It is a thin convenience wrapper around swiftgrep.WalkTree for
// callers that don't need to build their own Visitor factory.
func Run(ctx context.Context, sink *swiftgrep.Sink, pred Predicate, roots []string, opts ...swiftgrep.Option) error {
	newVisitor := func() swiftgrep.Visitor { return NewFilter(pred, sink) }
	return swiftgrep.WalkTree(ctx, roots, newVisitor, opts...)
}
