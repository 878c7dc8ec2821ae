// SPDX-License-Identifier: MIT

package stencil

import (
	"io"
	"log"
)

// Option configures a stencil call.
type Option func(*Options)

// Options holds resolved stencil settings. Fields stay unexported; use Option.
type Options struct {
	logger *log.Logger
}

// WithLogger routes default-weight notices to l. A nil l restores the
// discarding default.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		o.logger = l
	}
}

func gatherOptions(opts ...Option) Options {
	o := Options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard, "", 0)
	}

	return o
}
