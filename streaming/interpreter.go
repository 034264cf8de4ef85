package streaming

import "fmt"

// Source yields the raw events of one run in arrival order.
// Next blocks on the network read; Err reports the failure that ended
// iteration, if any.
type Source interface {
	Next() bool
	Current() RawEvent
	Err() error
	Close() error
}

// RepaintFunc receives the visible text each time it changes
type RepaintFunc func(text string)

// Interpret consumes src to exhaustion and returns the finalized run.
//
// Failures never escape: a transport error, an error frame or a panic while
// processing an event finalizes the run with an error message instead.
func Interpret(src Source, nodes Nodes, onRepaint RepaintFunc) (result Result) {
	acc := NewAccumulator()
	classifier := NewClassifier(nodes)

	defer func() {
		if r := recover(); r != nil {
			result = acc.Fail(fmt.Errorf("%w: %v", ErrInterpreterPanic, r))
		}
	}()
	defer func() {
		_ = src.Close()
	}()

	for src.Next() {
		event := classifier.Classify(src.Current())
		if acc.Apply(event) && onRepaint != nil {
			onRepaint(acc.State().Text)
		}
	}

	if err := src.Err(); err != nil {
		return acc.Fail(err)
	}
	return acc.Finalize()
}
