package stego

// channelsPerPixel is the number of color channels that carry payload
// bits. Alpha is never read or written.
const channelsPerPixel = 3

// channelCursor walks a permuted pixel order one color channel at a time:
// R, G, B of the current pixel, then the next pixel in the order. The
// header and body share one cursor, so a boundary that falls mid-pixel
// continues with the remaining channels of that same pixel.
type channelCursor struct {
	order   []int
	pos     int
	channel int
}

func newChannelCursor(order []int) *channelCursor {
	return &channelCursor{order: order}
}

// next returns the pixel index and channel (0=R, 1=G, 2=B) of the current
// position and advances the cursor. ok is false once the order is
// exhausted.
func (c *channelCursor) next() (pixel, channel int, ok bool) {
	if c.pos >= len(c.order) {
		return 0, 0, false
	}
	pixel = c.order[c.pos]
	channel = c.channel

	c.channel++
	if c.channel == channelsPerPixel {
		c.channel = 0
		c.pos++
	}
	return pixel, channel, true
}
