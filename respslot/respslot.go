// Package respslot implements the single-value rendezvous that bridges the
// CAN receive loop (producer) with the service routine awaiting an answer
// (consumer), including the ISO 14229 0x78 "response pending" retry rule.
package respslot

import (
	"time"

	"udscan/diag"
	"udscan/isotp"
	"udscan/metrics"
)

// Response is either a successfully decoded frame or a diagnostic error,
// represented as a Go discriminated union rather than a sum type.
type Response struct {
	Frame isotp.UdsFrame
	Err   *diag.Error
}

// Ok reports whether the response carries a frame rather than an error.
func (r Response) Ok() bool { return r.Err == nil }

func okResponse(f isotp.UdsFrame) Response { return Response{Frame: f} }
func errResponse(e *diag.Error) Response   { return Response{Err: e} }

func isPending(r Response) bool {
	return r.Err != nil && r.Err.Kind == diag.ECUError && r.Err.Code == diag.NRCRequestCorrectlyReceivedResponsePending
}

// defaultTimeout is the slot's fallback wait when no timeout is given.
const defaultTimeout = 1000 * time.Millisecond

// Slot is a single-producer/single-consumer rendezvous cell. The receive
// task calls Update as frames arrive; the request task calls
// WaitForResponse (or Get, for an unbounded wait) to consume the answer.
// The zero value is not usable; construct with New.
type Slot struct {
	timeout time.Duration

	mu      chan struct{} // 1-buffered channel used as a mutex
	current Response
	wake    chan struct{} // 1-buffered; holds at most one pending wake
}

// New creates a Slot defaulting to NotSupported until the first Update,
// with the given timeout, or 1000ms if timeout <= 0.
func New(timeout time.Duration) *Slot {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	s := &Slot{
		timeout: timeout,
		mu:      make(chan struct{}, 1),
		current: errResponse(diag.New(diag.NotSupported)),
		wake:    make(chan struct{}, 1),
	}
	s.mu <- struct{}{}
	return s
}

func (s *Slot) lock()   { <-s.mu }
func (s *Slot) unlock() { s.mu <- struct{}{} }

// Update decodes data into a UdsFrame and stores it as the current
// response, then posts a wake. The wake is kept until a waiter takes it;
// several Updates with no waiter in between leave a single wake, so the
// next waiter observes the last value. Decode failures are stored as the response
// too: they become the waiter's visible response, and the receive loop
// itself never aborts.
func (s *Slot) Update(data []byte) {
	frame, err := isotp.Decode(data)

	s.lock()
	if err != nil {
		metrics.DecodeErrors.Inc()
		s.current = errResponse(diag.NewFrameError(err))
	} else if nr, ok := frame.(isotp.NegativeResponse); ok {
		if nr.NRC != diag.NRCRequestCorrectlyReceivedResponsePending {
			metrics.NegativeResponses.Inc()
		}
		s.current = errResponse(diag.NewECUError(nr.NRC, nr.RSID))
	} else {
		s.current = okResponse(frame)
	}
	s.unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Get blocks forever until a response is available, with no timeout and no
// pending-retry handling.
func (s *Slot) Get() Response {
	s.lock()
	wake := s.wake
	s.unlock()

	<-wake

	s.lock()
	defer s.unlock()
	return s.current
}

// WaitForResponse blocks until a non-pending response arrives or the
// timeout elapses, implementing the pending-retry law: an
// ECUError{RequestCorrectlyReceivedResponsePending} is stashed and waited
// past rather than returned; a later value supersedes it; if the timeout
// expires while only a pending value has arrived, that stashed value is
// returned instead of a Timeout error.
func (s *Slot) WaitForResponse() Response {
	deadline := time.After(s.timeout)
	var stash Response
	haveStash := false

	for {
		s.lock()
		wake := s.wake
		s.unlock()

		select {
		case <-wake:
			s.lock()
			r := s.current
			s.unlock()

			if isPending(r) {
				metrics.PendingRetries.Inc()
				stash = r
				haveStash = true
				continue
			}
			return r
		case <-deadline:
			if haveStash {
				return stash
			}
			metrics.ResponseTimeouts.Inc()
			return errResponse(diag.New(diag.Timeout))
		}
	}
}
