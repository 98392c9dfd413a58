package dhcpv4

import (
	"log/slog"

	"github.com/soypat/dhcpc/internal"
)

// Tick advances the client clock by the given number of seconds. A pending
// immediate retry is processed first, so Tick(0) may transmit. Each second
// decrements the retransmission and state timers. When both expire in the
// same second only the state timeout is dispatched.
func (c *Client) Tick(seconds uint32) {
	state := c.State()
	if state == StateInactive {
		return
	} else if state == StateStartDelay && c.broadcastReady {
		c.bindAndInit() // Retry a failed bind.
	}
	c.immediateRetry()
	for i := uint32(0); i < seconds && c.State() != StateInactive; i++ {
		c.tickSecond()
	}
}

func (c *Client) immediateRetry() {
	if !c.retryPending {
		return
	}
	c.retryPending = false
	if c.retryCount >= c.retries {
		c.retryCount = 0
		c.trace("DHCPv4:retry-exhausted")
		return
	}
	c.retryCount++
	c.dispatch(evImmediateRetry, nil)
}

func (c *Client) tickSecond() {
	var rtxDue, stateDue bool
	if c.rtx > 0 {
		c.rtx--
		rtxDue = c.rtx == 0
	}
	if c.stateTimer > 0 {
		c.stateTimer--
		stateDue = c.stateTimer == 0
	}
	if stateDue {
		c.retryPending = false
		c.retryCount = 0
	}
	if c.secs != secsStop && c.secs < secsStop-1 {
		c.secs++
	}
	if stateDue {
		c.dispatch(evStateTimeout, nil)
	} else if rtxDue {
		c.dispatch(evRetransTimeout, nil)
	}
}

// retransmit resends the last message. A timeout steps the backoff unless
// the resend is standing in for a failed transmission.
func (c *Client) retransmit(ev event) {
	if ev == evRetransTimeout && !c.retryPending {
		c.backoff.Miss()
	}
	c.trace("DHCPv4:retransmit",
		slog.String("ev", ev.String()),
		slog.Uint64("wait", uint64(c.backoff.Wait())),
	)
	c.transmit()
	c.rtx = c.backoff.Wait()
}

// armAcquisition sets the backoff used while selecting and requesting.
func (c *Client) armAcquisition() {
	if c.simple {
		c.backoff = internal.NewBackoff(0, simpleRetransmit, simpleRetransmit)
	} else {
		c.backoff = internal.NewBackoff(0, initialRetransmit, maxRetransmit)
	}
}

// armRenewal sets the backoff used while renewing or rebinding over a window
// of the given length. The wait starts at half the window and halves on
// every retransmission down to a floor of 60 seconds.
func (c *Client) armRenewal(window uint32) {
	c.backoff = internal.NewBackoff(internal.BackoffDecay, max(minRetransmit, window/2), minRetransmit)
}
