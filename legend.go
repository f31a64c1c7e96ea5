package perch

import "math"

// LegendItem is one legend entry laid out at Y (relative to the legend's
// item area) with the given rendered height.
type LegendItem struct {
	Y, Height float64
	// Page is the zero-based page the item is shown on after Layout.
	Page int
}

// LegendPager splits an overflowing legend into scrollable pages.
type LegendPager struct {
	Padding     float64
	TitleHeight float64
	// InitialItemY is the y of the first item, added back to scroll offsets.
	InitialItemY float64
	// MaxHeight caps the available height when positive.
	MaxHeight float64

	pages        []float64
	clipHeight   float64
	currentPage  int
	scrollOffset float64
	fullHeight   float64
}

// navigationHeight is reserved for the page navigation row.
const navigationHeight = 20

// Layout assigns items to pages when the legend is taller than spaceHeight
// and returns the height the legend occupies.
func (l *LegendPager) Layout(items []*LegendItem, legendHeight, spaceHeight float64) float64 {
	if l.MaxHeight > 0 {
		spaceHeight = math.Min(spaceHeight, l.MaxHeight)
	}
	l.pages = l.pages[:0]
	if legendHeight == 0 || spaceHeight <= 0 || legendHeight <= spaceHeight {
		l.clipHeight = 0
		for _, it := range items {
			it.Page = 0
		}
		return legendHeight
	}

	l.clipHeight = math.Max(spaceHeight-navigationHeight-l.TitleHeight-l.Padding, 0)
	if l.currentPage == 0 {
		l.currentPage = 1
	}
	l.fullHeight = legendHeight

	// A new page starts at the item before the first one that no longer
	// fits, since that item was cut at the bottom of the previous page.
	var lastY float64
	for i, it := range items {
		y := it.Y
		h := math.Round(it.Height)
		n := len(l.pages)
		start := lastY
		if start == 0 {
			start = y
		}
		if n == 0 || (y-l.pages[n-1] > l.clipHeight && start != l.pages[n-1]) {
			l.pages = append(l.pages, start)
			n++
		}
		it.Page = n - 1
		if lastY != 0 {
			items[i-1].Page = n - 1
		}
		if i == len(items)-1 && y+h-l.pages[n-1] > l.clipHeight && y != lastY {
			l.pages = append(l.pages, y)
			it.Page = n
		}
		if y != lastY {
			lastY = y
		}
	}
	if l.currentPage > len(l.pages) {
		l.currentPage = len(l.pages)
	}
	return spaceHeight
}

// Scroll moves by pages (negative scrolls up) and returns the new scroll
// offset. It reports false when the legend does not paginate.
func (l *LegendPager) Scroll(by int) (float64, bool) {
	if len(l.pages) == 0 {
		return 0, false
	}
	page := l.currentPage + by
	if page > len(l.pages) {
		page = len(l.pages)
	}
	if page <= 0 {
		return l.scrollOffset, false
	}
	l.currentPage = page
	l.scrollOffset = -l.pages[page-1] + l.InitialItemY
	return l.scrollOffset, true
}

// Pages returns the scroll top of every page.
func (l *LegendPager) Pages() []float64 { return l.pages }

// PageCount returns the number of pages, 0 when the legend fits.
func (l *LegendPager) PageCount() int { return len(l.pages) }

// CurrentPage returns the one-based current page.
func (l *LegendPager) CurrentPage() int { return l.currentPage }

// ClipHeight returns the visible item height per page.
func (l *LegendPager) ClipHeight() float64 { return l.clipHeight }

// ScrollOffset returns the item offset for the current page.
func (l *LegendPager) ScrollOffset() float64 { return l.scrollOffset }

// FullHeight returns the unclipped legend height of the last overflowing
// layout.
func (l *LegendPager) FullHeight() float64 { return l.fullHeight }
