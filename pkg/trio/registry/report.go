package registry

import (
	"errors"
	"iter"

	"github.com/BrandonKowalski/trio/pkg/trio/schema"
)

// Report is yielded once per screen an operation touches.
type Report struct {
	Name    string
	Current int         // 1-based step number
	Total   int         // Steps planned for the operation
	View    schema.View // View built or discarded by the step; nil if none
}

// Drain runs seq to completion and collects its reports. It stops at the
// first error.
func Drain(seq iter.Seq2[Report, error]) ([]Report, error) {
	var reports []Report
	for rep, err := range seq {
		if err != nil {
			return reports, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

var errStopped = errors.New("consumer stopped")

// progress counts steps and forwards reports to the consumer.
type progress struct {
	yield   func(Report, error) bool
	current int
	total   int
}

func (p *progress) report(name string, view schema.View) error {
	p.current++
	if !p.yield(Report{Name: name, Current: p.current, Total: p.total, View: view}, nil) {
		return errStopped
	}
	return nil
}

// sequence wraps an operation into a single-use lazy sequence. plan runs
// first and must not mutate anything; its steps are then executed in order.
func (r *Registry) sequence(op string, plan func() ([]step, error)) iter.Seq2[Report, error] {
	consumed := false
	return func(yield func(Report, error) bool) {
		if consumed {
			yield(Report{}, stateError(op, "", ErrSequenceConsumed))
			return
		}
		consumed = true

		steps, err := plan()
		if err != nil {
			yield(Report{}, err)
			return
		}

		r.logger.Debug("Running registry operation", "op", op, "steps", len(steps))

		p := &progress{yield: yield, total: len(steps)}
		for _, s := range steps {
			view, err := r.run(op, s)
			if err != nil {
				r.logger.Error("Registry operation failed", "op", op, "screen", s.name, "error", err)
				yield(Report{}, err)
				return
			}
			if err := p.report(s.name, view); err != nil {
				r.logger.Debug("Registry operation abandoned by caller", "op", op, "completed", p.current, "total", p.total)
				return
			}
		}
	}
}
