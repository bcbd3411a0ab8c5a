// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package barrier

// config holds the optional per-barrier configuration shared by every
// algorithm: the single action run once per tripped episode, and the
// generic reduction hook run at every pairwise meeting point.
type config struct {
	action func()
	hook   Hook
}

// Option configures a barrier at construction time.
type Option func(*config)

// WithAction sets the zero-argument callable a barrier invokes exactly
// once per tripped episode, before the release fan-out. If the action
// panics, the panic propagates out of Await on the party that ran it; the
// barrier is not usable afterward for that episode and parties still
// spinning will hang. Wrap action bodies to catch and signal out-of-band
// if this matters to the caller.
func WithAction(action func()) Option {
	return func(c *config) {
		c.action = action
	}
}

// WithHook sets the generic reduction hook invoked as hook(dst, src) at
// every pairwise meeting point the algorithm defines. dst receives the
// combined result; src is not mutated.
func WithHook(hook Hook) Option {
	return func(c *config) {
		c.hook = hook
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// cacheLinePad is padding to prevent false sharing between adjacent
// per-party flag words on the same cache line.
type cacheLinePad [64]byte
