// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frame

import (
	"io"
	"time"

	"golang.org/x/text/language"
)

// DriverOption configures a Driver during creation.
//
// Example:
//
//	d, err := frame.NewDriver(app, r,
//	    frame.WithNoticeWriter(os.Stderr),
//	    frame.WithClock(clock.Now))
type DriverOption func(*driverOptions)

// driverOptions holds optional configuration for Driver creation.
type driverOptions struct {
	now      func() time.Time
	notice   io.Writer
	language language.Tag
}

func defaultOptions() driverOptions {
	return driverOptions{
		now:      time.Now,
		notice:   nil, // Will be set to os.Stdout if nil
		language: language.English,
	}
}

// WithClock sets the time source used to measure the interval between
// redraws. Tests use it to step time deterministically.
func WithClock(now func() time.Time) DriverOption {
	return func(o *driverOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithNoticeWriter sets where the quality notice is written. The default
// is standard output. Pass io.Discard to silence it.
func WithNoticeWriter(w io.Writer) DriverOption {
	return func(o *driverOptions) {
		o.notice = w
	}
}

// WithLanguage sets the locale used to format numbers in the quality
// notice. The default is English.
func WithLanguage(tag language.Tag) DriverOption {
	return func(o *driverOptions) {
		o.language = tag
	}
}
