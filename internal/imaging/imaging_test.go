package imaging

import (
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

type recordingCanvas struct {
	cells map[[2]int]rune
}

func newCanvas() *recordingCanvas {
	return &recordingCanvas{cells: map[[2]int]rune{}}
}

func (c *recordingCanvas) SetContent(x, y int, r rune, _ []rune, _ tcell.Style) {
	c.cells[[2]int{x, y}] = r
}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestTargetFitKeepsAspect(t *testing.T) {
	w, h, _ := target(image.Rect(0, 0, 200, 100), 40, 40, Fit)
	if w != 40 || h != 20 {
		t.Fatalf("fit = %dx%d, want 40x20", w, h)
	}
	w, h, _ = target(image.Rect(0, 0, 10, 10), 40, 40, Fit)
	if w != 10 || h != 10 {
		t.Fatalf("small image upscaled to %dx%d", w, h)
	}
}

func TestTargetCropFillsBox(t *testing.T) {
	w, h, from := target(image.Rect(0, 0, 200, 100), 40, 40, Crop)
	if w != 40 || h != 40 {
		t.Fatalf("crop = %dx%d, want 40x40", w, h)
	}
	if from.Dx() != 100 || from.Dy() != 100 || from.Min.X != 50 {
		t.Fatalf("crop window = %v", from)
	}
}

func TestHalfBlockEncodesTwoPixelsPerRow(t *testing.T) {
	p := HalfBlock{}.New(solid(8, 8, color.White))
	area := Rect{X: 2, Y: 1, W: 20, H: 10}
	require.True(t, p.NeedsResize(area, Fit))

	p.ResizeEncode(area, Fit)
	require.False(t, p.NeedsResize(area, Fit))
	require.True(t, p.NeedsResize(area, Crop))

	canvas := newCanvas()
	p.Render(canvas, area)
	require.Len(t, canvas.cells, 8*4)
	require.Equal(t, '▀', canvas.cells[[2]int{2, 1}])
	_, outside := canvas.cells[[2]int{2 + 8, 1}]
	require.False(t, outside)
}

func TestASCIIUsesLuminanceRamp(t *testing.T) {
	p := ASCII{}.New(solid(4, 4, color.White))
	area := Rect{W: 4, H: 4}
	p.ResizeEncode(area, Fit)

	canvas := newCanvas()
	p.Render(canvas, area)
	require.Equal(t, '@', canvas.cells[[2]int{0, 0}])

	dark := ASCII{}.New(solid(4, 4, color.Black))
	dark.ResizeEncode(area, Fit)
	canvas = newCanvas()
	dark.Render(canvas, area)
	require.Equal(t, ' ', canvas.cells[[2]int{0, 0}])
}

func TestRenderClipsToSmallerArea(t *testing.T) {
	p := HalfBlock{}.New(solid(10, 10, color.White))
	p.ResizeEncode(Rect{W: 10, H: 5}, Fit)

	canvas := newCanvas()
	p.Render(canvas, Rect{W: 3, H: 2})
	require.Len(t, canvas.cells, 6)
}

func TestPickHonoursSetting(t *testing.T) {
	require.Nil(t, Pick("none", 256, nil))
	require.Equal(t, "ascii", Pick("ascii", 256, nil).Name())
	require.Equal(t, "halfblock", Pick("halfblock", 0, nil).Name())
	require.Equal(t, "ascii", Pick("auto", 0, nil).Name())
	require.Equal(t, "halfblock", Pick("auto", 256, nil).Name())
}

// countingProtocol tracks how many goroutines hold it at once.
type countingProtocol struct {
	mu      sync.Mutex
	holders int
	maxSeen int
	area    Rect
	encodes int
}

func (p *countingProtocol) enter() {
	p.mu.Lock()
	p.holders++
	if p.holders > p.maxSeen {
		p.maxSeen = p.holders
	}
	p.mu.Unlock()
}

func (p *countingProtocol) leave() {
	p.mu.Lock()
	p.holders--
	p.mu.Unlock()
}

func (p *countingProtocol) NeedsResize(area Rect, _ ResizeMode) bool {
	p.enter()
	defer p.leave()
	return p.area != area
}

func (p *countingProtocol) ResizeEncode(area Rect, _ ResizeMode) {
	p.enter()
	defer p.leave()
	p.area = area
	p.encodes++
}

func (p *countingProtocol) Render(Canvas, Rect) {
	p.enter()
	defer p.leave()
}

func TestHandleRoundTripsKeepSingleOwner(t *testing.T) {
	results := make(chan Result)
	worker := NewWorker(1, func(r Result) { results <- r })
	defer worker.Close()

	proto := &countingProtocol{}
	h := NewHandle(7, proto, Fit)
	canvas := newCanvas()

	const rounds = 25
	for i := 1; i <= rounds; i++ {
		area := Rect{W: 10 + i, H: 5}
		h.Render(canvas, area, worker.Submit)
		require.True(t, h.InFlight(), "round %d: protocol should be with the worker", i)

		h.Render(canvas, area, worker.Submit)
		require.True(t, h.InFlight())

		r := <-results
		require.True(t, h.Install(r))
		require.False(t, h.InFlight())
		require.False(t, h.Install(r), "second install of the same result must fail")

		h.Render(canvas, area, worker.Submit)
		require.False(t, h.InFlight(), "fitted protocol should stay with the handle")
	}

	require.Equal(t, rounds, proto.encodes)
	require.Equal(t, 1, proto.maxSeen)
}

func TestHandleRejectsStaleVersion(t *testing.T) {
	old := NewHandle(1, &countingProtocol{}, Fit)
	var job Job
	old.Render(newCanvas(), Rect{W: 4, H: 4}, func(j Job) bool { job = j; return true })
	require.True(t, old.InFlight())

	current := NewHandle(2, &countingProtocol{}, Fit)
	require.False(t, current.Install(Result{Version: job.Version, Protocol: job.Protocol}))
	require.False(t, current.InFlight())
	require.True(t, old.Install(Result{Version: job.Version, Protocol: job.Protocol}))
}

func TestHandleKeepsOwnershipWhenQueueFull(t *testing.T) {
	h := NewHandle(3, &countingProtocol{}, Fit)
	h.Render(newCanvas(), Rect{W: 4, H: 4}, func(Job) bool { return false })
	require.False(t, h.InFlight())
}

func TestWorkerProcessesInOrder(t *testing.T) {
	var got []uint64
	var mu sync.Mutex
	worker := NewWorker(8, func(r Result) {
		mu.Lock()
		got = append(got, r.Version)
		mu.Unlock()
	})
	for v := uint64(1); v <= 5; v++ {
		require.True(t, worker.Submit(Job{Version: v, Protocol: &countingProtocol{}, Area: Rect{W: 1, H: 1}}))
	}
	worker.Close()
	require.Equal(t, []uint64{1, 2, 3, 4, 5}, got)
}
