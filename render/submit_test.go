// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// laggingQueue reports completion only up to a manually advanced index.
type laggingQueue struct {
	hal.Queue
	submitted uint64
	completed uint64
}

func (q *laggingQueue) Submit(bufs []hal.CommandBuffer) (uint64, error) {
	if _, err := q.Queue.Submit(bufs); err != nil {
		return 0, err
	}
	q.submitted++
	return q.submitted, nil
}

func (q *laggingQueue) PollCompleted() uint64 { return q.completed }

// countingDevice counts freed command buffers.
type countingDevice struct {
	hal.Device
	freed int
}

func (d *countingDevice) FreeCommandBuffer(cb hal.CommandBuffer) {
	d.freed++
	d.Device.FreeCommandBuffer(cb)
}

func TestSubmitKeepsPendingBuffers(t *testing.T) {
	inner, innerQueue, cleanup := createNoopDevice(t)
	defer cleanup()

	device := &countingDevice{Device: inner}
	queue := &laggingQueue{Queue: innerQueue}

	r, err := NewQuadRenderer(device, queue, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatalf("NewQuadRenderer: %v", err)
	}
	f := createFrame(t, inner, 32, 32)

	for i := 0; i < 2; i++ {
		if err := r.Draw(f); err != nil {
			t.Fatalf("Draw #%d: %v", i, err)
		}
	}
	if device.freed != 0 {
		t.Errorf("freed = %d while queue has completed nothing, want 0", device.freed)
	}
	if len(r.sub.inFlight) != 2 {
		t.Fatalf("in-flight command buffers = %d, want 2", len(r.sub.inFlight))
	}

	// First submission completes; the second is still executing.
	queue.completed = 1
	if err := r.Draw(f); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if device.freed != 1 {
		t.Errorf("freed = %d after first submission completed, want 1", device.freed)
	}
	if len(r.sub.inFlight) != 2 {
		t.Errorf("in-flight command buffers = %d, want 2", len(r.sub.inFlight))
	}
	for _, sb := range r.sub.inFlight {
		if sb.index <= queue.completed {
			t.Errorf("completed submission %d still tracked", sb.index)
		}
	}

	r.Destroy()
	if device.freed != 3 {
		t.Errorf("freed = %d after Destroy, want 3", device.freed)
	}
	if len(r.sub.inFlight) != 0 {
		t.Errorf("in-flight command buffers = %d after Destroy", len(r.sub.inFlight))
	}
}

func TestSubmitReleasesCompletedBuffers(t *testing.T) {
	inner, innerQueue, cleanup := createNoopDevice(t)
	defer cleanup()

	device := &countingDevice{Device: inner}
	queue := &laggingQueue{Queue: innerQueue}
	s := submitter{device: device, queue: queue}

	for i := 0; i < 4; i++ {
		if err := s.submit("test", func(hal.CommandEncoder) {}); err != nil {
			t.Fatalf("submit #%d: %v", i, err)
		}
		queue.completed = queue.submitted
	}
	// Each submit frees the buffers completed before it ran.
	if device.freed != 3 {
		t.Errorf("freed = %d, want 3", device.freed)
	}
	s.drain()
	if device.freed != 4 || len(s.inFlight) != 0 {
		t.Errorf("after drain: freed = %d, in flight = %d", device.freed, len(s.inFlight))
	}
}
