package reading

import (
	"strings"

	"yomi/capability"
	"yomi/errs"
)

// Status describes how a resolution ended.
type Status string

const (
	Resolved    Status = "resolved"
	Unchanged   Status = "unchanged"
	Unavailable Status = "unavailable"
	Failed      Status = "failed"
)

// Outcome is the result of resolving one token. Reading is empty unless
// Status is Resolved.
type Outcome struct {
	Token   string `json:"token"`
	Reading string `json:"reading,omitempty"`
	Status  Status `json:"status"`
	Err     error  `json:"-"`
}

// Resolver derives hiragana readings through a Converter. It holds no
// mutable state and may be shared between goroutines.
type Resolver struct {
	conv capability.Converter
}

// New returns a resolver; a nil converter makes every resolution Unavailable.
func New(conv capability.Converter) *Resolver {
	return &Resolver{conv: conv}
}

// Available reports whether a converter is configured.
func (r *Resolver) Available() bool {
	return r.conv != nil
}

// Resolve returns the reading for token.
func (r *Resolver) Resolve(token string) Outcome {
	if r.conv == nil {
		return Outcome{Token: token, Status: Unavailable}
	}
	pairs, err := r.conv.Convert(token)
	if err != nil {
		return Outcome{Token: token, Status: Failed, Err: errs.Wrap(errs.ResolutionFailure, err, "resolve %q", token)}
	}
	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(p.Hira)
	}
	reading := b.String()
	switch {
	case reading == "":
		return Outcome{Token: token, Status: Failed, Err: errs.New(errs.ResolutionFailure, "empty reading for %q", token)}
	case reading == token:
		return Outcome{Token: token, Status: Unchanged}
	}
	return Outcome{Token: token, Reading: reading, Status: Resolved}
}
