// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface owns the presentation target a frame is rendered into.
//
// A [Target] is the platform-facing boundary: it is configured with a
// [Config], hands out one [Frame] per tick and presents it. The [Manager]
// is the single owner of the active configuration. It rebuilds it on
// resize and after recoverable presentation failures, and classifies every
// failure into an [Action] for the frame driver.
//
// Besides window swapchains adapted by hosts, the package provides
// [OffscreenTarget] (a GPU texture read back after every present) and
// [ImageTarget] (CPU images for software rendering).
//
// # Presentation Failures
//
//	Lost, Outdated  -> ActionReconfigure     (rebuild, retry next tick)
//	OutOfMemory     -> ActionFatalExit       (stop the render loop)
//	anything else   -> ActionLogAndContinue  (skip this frame)
//
// Targets translate backend-specific failures into [ErrLost],
// [ErrOutdated], [ErrOutOfMemory] and [ErrTimeout] so classification does
// not depend on the backend.
//
// # Ownership
//
// A Target borrows the window it presents to. Hosts must keep the window
// alive for as long as the Target, typically by owning both in one struct
// and tearing the Target down first.
package surface
