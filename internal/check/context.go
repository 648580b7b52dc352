package check

import "fmt"

// Context is the per-run memoization cache, mapping check identity to the
// computed Result. Once populated for an identity it is never overwritten
// within the same run; Reset clears it for the next run.
//
// A Context belongs to exactly one suite run at a time and is not safe for
// concurrent use.
type Context struct {
	results map[string]Result
	count   int
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{results: make(map[string]Result)}
}

// Reset clears all recorded results.
func (c *Context) Reset() {
	c.results = make(map[string]Result)
	c.count = 0
}

// Has reports whether a result is recorded for the identity.
func (c *Context) Has(id Identity) bool {
	_, ok := c.results[id.Fingerprint()]
	return ok
}

// Put records the result for an identity. Recording a second result for the
// same identity within a run fails with ErrResultExists.
func (c *Context) Put(id Identity, res Result) error {
	fp := id.Fingerprint()
	if _, ok := c.results[fp]; ok {
		return fmt.Errorf("%w: %s", ErrResultExists, id)
	}
	c.results[fp] = res
	c.count++
	return nil
}

// Get returns the recorded result for an identity, if any.
func (c *Context) Get(id Identity) (Result, bool) {
	res, ok := c.results[id.Fingerprint()]
	return res, ok
}

// Result returns the recorded result for an identity, failing with
// ErrResultNotReady if the check has not computed in this run.
func (c *Context) Result(id Identity) (Result, error) {
	res, ok := c.results[id.Fingerprint()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrResultNotReady, id)
	}
	return res, nil
}

// Len returns the number of recorded results.
func (c *Context) Len() int { return c.count }
