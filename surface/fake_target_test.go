// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

// fakeTarget records calls and returns scripted errors.
type fakeTarget struct {
	configs      []Config
	configureErr []error

	acquireErr error
	presentErr error

	presented int
	discarded int
}

func (f *fakeTarget) Configure(cfg Config) error {
	f.configs = append(f.configs, cfg)
	if len(f.configureErr) > 0 {
		err := f.configureErr[0]
		f.configureErr = f.configureErr[1:]
		return err
	}
	return nil
}

func (f *fakeTarget) Acquire() (*Frame, error) {
	if f.acquireErr != nil {
		return nil, f.acquireErr
	}
	last := f.configs[len(f.configs)-1]
	return &Frame{Width: last.Width, Height: last.Height, Format: last.Format}, nil
}

func (f *fakeTarget) Present(*Frame) error {
	if f.presentErr != nil {
		return f.presentErr
	}
	f.presented++
	return nil
}

func (f *fakeTarget) Discard(*Frame) {
	f.discarded++
}
