// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/fractal"
	"github.com/gogpu/wgpu/hal"
)

// submitter records and submits one command buffer per frame.
//
// A command buffer is freed only once the queue reports its submission
// index as completed. Buffers still executing carry over to later frames.
type submitter struct {
	device hal.Device
	queue  hal.Queue

	inFlight []submission
}

// submission pairs a submitted command buffer with its queue index.
type submission struct {
	index uint64
	buf   hal.CommandBuffer
}

// submit records a frame with record and submits it.
func (s *submitter) submit(label string, record func(enc hal.CommandEncoder)) error {
	s.release()

	encoder, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: label + "_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	encoded := false
	defer func() {
		if !encoded {
			encoder.DiscardEncoding()
		}
	}()

	record(encoder)

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	encoded = true

	index, err := s.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		s.device.FreeCommandBuffer(cmdBuf)
		return fmt.Errorf("submit: %w", err)
	}
	s.inFlight = append(s.inFlight, submission{index: index, buf: cmdBuf})
	return nil
}

// release frees command buffers whose submissions the queue has completed.
func (s *submitter) release() {
	if len(s.inFlight) == 0 {
		return
	}
	completed := s.queue.PollCompleted()
	pending := s.inFlight[:0]
	for _, sb := range s.inFlight {
		if sb.index <= completed {
			s.device.FreeCommandBuffer(sb.buf)
			continue
		}
		pending = append(pending, sb)
	}
	clear(s.inFlight[len(pending):])
	s.inFlight = pending
}

// releaseAll frees every tracked command buffer regardless of queue progress.
func (s *submitter) releaseAll() {
	for _, sb := range s.inFlight {
		s.device.FreeCommandBuffer(sb.buf)
	}
	clear(s.inFlight)
	s.inFlight = s.inFlight[:0]
}

// drain waits for the queue and frees everything still in flight.
func (s *submitter) drain() {
	if len(s.inFlight) == 0 {
		return
	}
	if err := s.device.WaitIdle(); err != nil {
		fractal.Logger().Warn("render: wait idle before release", "err", err)
	}
	s.releaseAll()
}
