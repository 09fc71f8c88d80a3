package controller

import (
	"context"

	"github.com/latch-net/latch-be/internal/dispatch"
)

// Canned endpoint/payload pairs understood by the device controller firmware.
const (
	lockPath      = "/api/lock"
	unlockPath    = "/api/unlock"
	lockPayload   = `{"action": "lock"}`
	unlockPayload = `{"action": "unlock"}`
)

// LockController wires the two canned device commands to a shared dispatcher.
// It performs no validation of its own; the dispatcher's checks are the only
// gate between a trigger and the wire.
type LockController struct {
	dispatcher *dispatch.Dispatcher
}

func NewLockController(d *dispatch.Dispatcher) *LockController {
	return &LockController{dispatcher: d}
}

// TriggerLock retargets the stored configuration at the lock endpoint and
// sends.
func (c *LockController) TriggerLock(ctx context.Context) {
	c.trigger(ctx, lockPath, lockPayload)
}

// TriggerUnlock retargets the stored configuration at the unlock endpoint and
// sends.
func (c *LockController) TriggerUnlock(ctx context.Context) {
	c.trigger(ctx, unlockPath, unlockPayload)
}

func (c *LockController) trigger(ctx context.Context, path, payload string) {
	c.dispatcher.Connection().SetPath(path)
	c.dispatcher.Message().SetPayload(payload)
	c.dispatcher.Send(ctx)
}
