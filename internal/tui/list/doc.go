// Package listview is a scrolling window over a slice of items for Bubble Tea
// views. Only the rows inside the window are rendered, so long series such as a
// fine-grained distance sweep stay cheap to draw.
package listview
