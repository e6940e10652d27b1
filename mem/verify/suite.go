package verify

import (
	"github.com/go-kit/log/level"

	"github.com/gopheros/memfill/mem"
)

// Case is a single filler/probe combination.
type Case struct {
	Name  string
	Fill  mem.FillFunc
	Probe Probe

	// Reference marks the cases that validate the verifier itself.
	Reference bool

	// Expected is false for combinations the filler is not designed to
	// handle, such as a word filler given a size that is not a multiple of
	// its width.
	Expected bool
}

// Result is the outcome of running a Case.
type Result struct {
	Case     Case
	Mismatch Mismatch
	Failed   bool
}

// Unexpected returns true if a case that should have passed failed.
func (r Result) Unexpected() bool {
	return r.Failed && r.Case.Expected
}

// Suite returns every filler/probe combination, starting with the reference
// memset. The generic word fillers use the given width.
func Suite(width mem.WordWidth) ([]Case, error) {
	f, err := mem.NewWordFiller(width)
	if err != nil {
		return nil, err
	}

	type filler struct {
		name      string
		fill      mem.FillFunc
		unaligned bool
	}
	fillers := []filler{
		{"Memset", mem.Memset, true},
		{"FillBytes", mem.FillBytes, true},
		{"FillWords32", mem.FillWords32, false},
		{"FillWords", f.Fill, false},
		{"FillUnaligned32", mem.FillUnaligned32, true},
		{"FillUnaligned", f.FillUnaligned, true},
	}

	cases := make([]Case, 0, 2*len(fillers))
	for i, fl := range fillers {
		for _, probe := range []Probe{Aligned, Unaligned} {
			cases = append(cases, Case{
				Name:      fl.name,
				Fill:      fl.fill,
				Probe:     probe,
				Reference: i == 0,
				Expected:  probe == Aligned || fl.unaligned,
			})
		}
	}

	return cases, nil
}

// Run checks every case in order. Cases that are not expected to pass are
// skipped unless all is set.
func (v *Verifier) Run(cases []Case, all bool) []Result {
	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		if !c.Expected && !all {
			continue
		}

		m, failed := v.Check(c.Name, c.Fill, c.Probe)
		results = append(results, Result{Case: c, Mismatch: m, Failed: failed})

		if failed && c.Expected {
			level.Warn(v.logger).Log("msg", "filler check failed", "filler", c.Name, "probe", c.Probe, "index", m.Index, "reason", m)
		}
	}

	return results
}

// Sweep runs CheckSizes on every case that accepts unaligned requests.
func (v *Verifier) Sweep(cases []Case, width mem.WordWidth) []Result {
	var results []Result
	for _, c := range cases {
		if c.Probe != Unaligned || !c.Expected {
			continue
		}

		m, failed := v.CheckSizes(c.Name, c.Fill, width)
		results = append(results, Result{Case: c, Mismatch: m, Failed: failed})
	}

	return results
}
