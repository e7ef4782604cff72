// Package scroll implements the virtualized list math: which rows of a huge
// segment list are worth materializing, and where an animated jump to a
// given row should land.
package scroll

// Viewport describes the scrollable list geometry. All values are pixels
// except OverscanCount, which is extra rows rendered beyond the visible
// window to reduce flicker during fast scrolling.
type Viewport struct {
	ScrollOffsetPx   float64
	ItemHeightPx     int
	ViewportHeightPx int
	OverscanCount    int
}

// Range is an inclusive [Start, End] row window.
type Range struct {
	Start int
	End   int
}

// Align selects where a scrolled-to row lands in the viewport.
type Align int

const (
	AlignCenter Align = iota
	AlignStart
)

// VisibleRange computes the rows to materialize for itemCount rows. Rows
// outside the window simply do not exist as far as rendering is concerned.
func (v Viewport) VisibleRange(itemCount int) Range {
	if itemCount <= 0 || v.ItemHeightPx <= 0 {
		return Range{Start: 0, End: -1}
	}

	start := int(v.ScrollOffsetPx)/v.ItemHeightPx - v.OverscanCount
	if start < 0 {
		start = 0
	}
	end := int(v.ScrollOffsetPx+float64(v.ViewportHeightPx))/v.ItemHeightPx + v.OverscanCount
	if end > itemCount-1 {
		end = itemCount - 1
	}
	return Range{Start: start, End: end}
}

// ContentHeight is the total scrollable height.
func (v Viewport) ContentHeight(itemCount int) int {
	if itemCount < 0 {
		return 0
	}
	return itemCount * v.ItemHeightPx
}

// MaxScroll is the largest valid scroll offset.
func (v Viewport) MaxScroll(itemCount int) float64 {
	max := float64(v.ContentHeight(itemCount) - v.ViewportHeightPx)
	if max < 0 {
		return 0
	}
	return max
}

// TargetOffset computes where ScrollOffsetPx should end up so that row index
// sits at the requested alignment, clamped to [0, MaxScroll].
func (v Viewport) TargetOffset(index int, align Align, itemCount int) float64 {
	target := float64(index * v.ItemHeightPx)
	if align == AlignCenter {
		target += float64(v.ItemHeightPx)/2 - float64(v.ViewportHeightPx)/2
	}
	if target < 0 {
		return 0
	}
	if max := v.MaxScroll(itemCount); target > max {
		return max
	}
	return target
}
