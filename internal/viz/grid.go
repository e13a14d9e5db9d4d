package viz

// GridLines returns the x positions of vertical lines and the y positions
// of horizontal lines of a block×block grid aligned on the centre of a w×h
// surface.
func GridLines(w, h int, block float64) (xs, ys []float64) {
	if block <= 0 {
		return nil, nil
	}
	return axisLines(float64(w), block), axisLines(float64(h), block)
}

func axisLines(extent, block float64) []float64 {
	mid := extent / 2
	lines := []float64{mid}
	for off := block; mid-off >= 0 || mid+off <= extent; off += block {
		if mid-off >= 0 {
			lines = append([]float64{mid - off}, lines...)
		}
		if mid+off <= extent {
			lines = append(lines, mid+off)
		}
	}
	return lines
}
