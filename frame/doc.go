// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package frame drives the viewer one event at a time.
//
// A [Driver] owns the application state (view, held keys and the surface
// manager) and is the only place it changes. Hosts translate platform
// callbacks into [Event] values and pass them to [Driver.Handle], which
// returns the resulting [State]:
//
//	d, _ := frame.NewDriver(app, renderer)
//	for ev := range events {
//	    if d.Handle(ev) == frame.Exiting {
//	        break
//	    }
//	}
//
// Each [RedrawEvent] runs one frame: integrate, encode, upload, acquire,
// draw, present. Failures are classified by the surface manager and never
// escape Handle; only a fatal failure or a [CloseEvent] ends the loop.
package frame
