package imaging

// Handle owns the protocol of the image currently previewed. Its inner slot is
// nil exactly while the protocol is with the worker. Handles are used only by
// the session loop.
type Handle struct {
	inner   Protocol
	version uint64
	mode    ResizeMode
}

// NewHandle wraps p under version.
func NewHandle(version uint64, p Protocol, mode ResizeMode) *Handle {
	return &Handle{inner: p, version: version, mode: mode}
}

// Version is the tag results must carry to be installed.
func (h *Handle) Version() uint64 {
	return h.version
}

// InFlight reports whether the protocol is currently with the worker.
func (h *Handle) InFlight() bool {
	return h.inner == nil
}

// Render draws the image into area. If the encoded cells do not fit area the
// protocol is offered to submit; when submit accepts it, ownership moves to
// the job and nothing is drawn until the result is installed. A refused
// submit keeps ownership and draws the previous encoding clipped to area.
func (h *Handle) Render(c Canvas, area Rect, submit func(Job) bool) {
	if h.inner == nil || area.Empty() {
		return
	}
	if h.inner.NeedsResize(area, h.mode) {
		job := Job{Version: h.version, Protocol: h.inner, Area: area, Mode: h.mode}
		if submit != nil && submit(job) {
			h.inner = nil
			return
		}
	}
	h.inner.Render(c, area)
}

// Install takes back a protocol returned by the worker. Results for another
// version, or arriving while the handle already holds a protocol, are
// rejected and the caller drops them.
func (h *Handle) Install(r Result) bool {
	if r.Version != h.version || h.inner != nil || r.Protocol == nil {
		return false
	}
	h.inner = r.Protocol
	return true
}
