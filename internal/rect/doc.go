// Package rect implements the rectangle transformation core: the geometry
// and state model of a rectangular text selection, the algorithms that
// shift, reflow, and reconstruct rectangles from heterogeneous-width text,
// and the padding analysis used to realign externally produced content.
//
// A Context owns one buffer's rectangle state: the active Rectangle and the
// single persisted LastRectangle snapshot, whose endpoints are durable
// markers so the snapshot survives intervening edits. Rebuild is the single
// splicing primitive shared by fill/reflow and the matrix exchange
// protocol.
package rect
