// Package generation tags asynchronous requests so that a view can drop
// responses it no longer cares about.
package generation

// Token identifies the request a response belongs to.
type Token struct {
	Epoch uint64
	Seq   uint64
}

// Tracker issues tokens for one view. Every activation and deactivation
// starts a new epoch; every fetch within an epoch gets a new sequence.
type Tracker struct {
	epoch  uint64
	seq    uint64
	active bool
}

// Activate starts a new epoch and accepts responses again.
func (t *Tracker) Activate() {
	t.epoch++
	t.active = true
}

// Deactivate starts a new epoch, discarding everything in flight.
func (t *Tracker) Deactivate() {
	t.epoch++
	t.active = false
}

// Active reports whether the view is accepting responses.
func (t *Tracker) Active() bool {
	return t.active
}

// Next issues a token that supersedes all earlier ones.
func (t *Tracker) Next() Token {
	t.seq++
	return Token{Epoch: t.epoch, Seq: t.seq}
}

// Side issues a token for a request that does not supersede a fetch,
// such as a favorite toggle. It stays valid for the whole epoch.
func (t *Tracker) Side() Token {
	return Token{Epoch: t.epoch}
}

// Current reports whether tok is the latest fetch of the live epoch.
func (t *Tracker) Current(tok Token) bool {
	return t.active && tok.Epoch == t.epoch && tok.Seq == t.seq
}

// Live reports whether tok belongs to the live epoch.
func (t *Tracker) Live(tok Token) bool {
	return t.active && tok.Epoch == t.epoch
}
