// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Provides 64-byte aligned, zero-filled allocation for container buffers.
//
// # Budgeted Allocation
//
// Alloc, Realloc and Free reserve and release bytes against an optional
// resource.Controller. Realloc is all or nothing: when the budget rejects the
// new size the old buffer is returned unchanged together with the error.
package mem
