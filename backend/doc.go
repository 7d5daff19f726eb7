// Package backend implements the character-cell grid contract and the
// device-independent layers of the rendering chain.
//
// A chain is composed top-down: widgets write into a Buffer (or
// CursorBuffer), whose Commit diffs against shadow state and forwards
// only changed cells to the next backend; a device backend run-length
// batches those writes through a Coalescer before touching the terminal.
//
// All layers are synchronous and single-threaded: redraw is driven by a
// caller-owned input loop, and no locking exists anywhere in the chain.
package backend
