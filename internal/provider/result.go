package provider

// Result is the outcome of one completion: either reply text or the
// failure that prevented it.
type Result struct {
	text string
	err  error
}

func OK(text string) Result { return Result{text: text} }

func Failed(err error) Result { return Result{err: err} }

func (r Result) IsOK() bool   { return r.err == nil }
func (r Result) Text() string { return r.text }
func (r Result) Err() error   { return r.err }
