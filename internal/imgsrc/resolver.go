// Package imgsrc picks which image URL to show from an ordered list of
// candidates, moving down the list each time the rendering surface reports
// that the current one failed to load.
//
// A Resolver never performs I/O. Surfaces that cannot observe image loads
// themselves (the terminal browser, the HTTP resolve endpoint) use a Prober
// to play that role.
package imgsrc

import "slices"

// Placeholder is an inline SVG shown once every candidate has failed.
// '#' is encoded as %23 so the URL stays valid on one line.
const Placeholder = "data:image/svg+xml;utf8," +
	"<svg xmlns='http://www.w3.org/2000/svg' width='200' height='120'>" +
	"<rect width='100%' height='100%' fill='%23e5e7eb'/>" +
	"<text x='50%' y='50%' dominant-baseline='middle' text-anchor='middle' fill='%236b7280' font-family='sans-serif' font-size='12'>Image not available</text>" +
	"</svg>"

// Resolver is a linear fallback chain over image candidates.
// The zero value has no candidates and resolves to Placeholder.
type Resolver struct {
	candidates []string
	cursor     int
}

// New returns a resolver over candidates with empty entries removed.
func New(candidates ...string) *Resolver {
	return &Resolver{candidates: normalize(candidates)}
}

// FromAny accepts the loose shapes candidate lists arrive in: nil, a single
// string, or a string slice.
func FromAny(src any) *Resolver {
	switch v := src.(type) {
	case string:
		return New(v)
	case []string:
		return New(v...)
	case *string:
		if v == nil {
			return New()
		}
		return New(*v)
	default:
		return New()
	}
}

// Current returns the URL the surface should attempt to load.
func (r *Resolver) Current() string {
	if r.cursor < 0 || r.cursor >= len(r.candidates) {
		return Placeholder
	}
	return r.candidates[r.cursor]
}

// ReportFailure advances to the next candidate. A failure on the last
// candidate exhausts the resolver so Current yields Placeholder; failures
// after that change nothing. It reports whether the surface should retry
// with a new candidate.
func (r *Resolver) ReportFailure() bool {
	if r.cursor < len(r.candidates)-1 {
		r.cursor++
		return true
	}
	if r.cursor == len(r.candidates)-1 {
		r.cursor = len(r.candidates)
	}
	return false
}

// Exhausted reports whether Current has fallen back to the placeholder.
func (r *Resolver) Exhausted() bool {
	return r.cursor >= len(r.candidates)
}

// Reset swaps in a new candidate list and rewinds the cursor. An identical
// list leaves the cursor alone, so re-rendering the same entity does not
// retry candidates that already failed.
func (r *Resolver) Reset(candidates ...string) {
	next := normalize(candidates)
	if slices.Equal(next, r.candidates) {
		return
	}
	r.candidates = next
	r.cursor = 0
}

// Candidates returns a copy of the normalised candidate list.
func (r *Resolver) Candidates() []string {
	return slices.Clone(r.candidates)
}

func normalize(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
