package gallery

// DefaultScrollThreshold is how many rows from the bottom of the content a
// scroll must reach before the next page is requested.
const DefaultScrollThreshold = 4

// NearBottom reports whether a viewport showing rows [offset,
// offset+viewportHeight) of contentHeight rows is within threshold rows of
// the end.
func NearBottom(offset, viewportHeight, contentHeight, threshold int) bool {
	return offset+viewportHeight >= contentHeight-threshold
}
