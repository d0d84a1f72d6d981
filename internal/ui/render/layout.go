package render

type layoutMetrics struct {
	sidebarWidth          int
	sideSeparatorWidth    int
	contentSeparatorWidth int
	mainPanelStart        int
	mainPanelWidth        int
	previewStart          int
	previewWidth          int
	showPreview           bool
}

const (
	minMainPanelWidth       = 24
	minPreviewPanelWidth    = 20
	minPreviewTerminalWidth = 60
	previewWidthRatio       = 0.5
	previewWidthCap         = 100
)

// computeLayout splits a terminal of width w into the parent sidebar, the
// entry list and the preview pane.
func computeLayout(w int) layoutMetrics {
	if w < 0 {
		w = 0
	}

	metrics := layoutMetrics{}
	metrics.sidebarWidth = sidebarWidthForWidth(w)
	if metrics.sidebarWidth > 0 && metrics.sidebarWidth < w {
		metrics.sideSeparatorWidth = 1
	}

	metrics.mainPanelStart = metrics.sidebarWidth + metrics.sideSeparatorWidth
	contentWidth := w - metrics.mainPanelStart
	if contentWidth < 0 {
		contentWidth = 0
	}
	metrics.mainPanelWidth = contentWidth
	metrics.previewStart = w

	if w < minPreviewTerminalWidth || contentWidth < minMainPanelWidth+minPreviewPanelWidth+1 {
		return metrics
	}

	previewWidth := int(float64(contentWidth)*previewWidthRatio + 0.5)
	if previewWidth > previewWidthCap {
		previewWidth = previewWidthCap
	}
	if previewWidth < minPreviewPanelWidth {
		previewWidth = minPreviewPanelWidth
	}
	mainWidth := contentWidth - 1 - previewWidth
	if mainWidth < minMainPanelWidth {
		previewWidth -= minMainPanelWidth - mainWidth
		mainWidth = minMainPanelWidth
	}
	if previewWidth < minPreviewPanelWidth {
		return metrics
	}

	metrics.showPreview = true
	metrics.contentSeparatorWidth = 1
	metrics.mainPanelWidth = mainWidth
	metrics.previewWidth = previewWidth
	metrics.previewStart = metrics.mainPanelStart + mainWidth + 1
	return metrics
}

func sidebarWidthForWidth(w int) int {
	switch {
	case w >= 150:
		return 28
	case w >= 120:
		return 24
	case w >= 100:
		return 20
	case w >= 80:
		return 16
	case w >= 65:
		return 12
	case w >= 52:
		return 10
	default:
		return 0
	}
}
