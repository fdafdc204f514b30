// Package segpool is a user-space sub-allocator library: given a
// backing byte buffer obtained from the host allocator, it carves the
// buffer into variable-sized allocations on request and reclaims them
// on release, tracking the buffer as a doubly-linked list of allocated
// and free segments with an auxiliary size-ordered gap index for
// best-fit placement.
//
// The engine itself (segment list, node arena, gap index, allocate/
// free/coalesce) lives in internal/allocator and is exposed here as
// Pool. The process-wide table of open pools lives in
// internal/registry and is exposed here as Library.
package segpool
