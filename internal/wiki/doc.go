// Package wiki defines the domain types shared by the pagekeep stores:
// pages, revisions, role permissions, page overwrites, and the
// Permissions bitmask they all speak in.
//
// Titles are compared case-insensitively across the whole system. The
// canonical comparison key is the Unicode case fold of the NFC-normalized
// title (see Fold); stores persist it alongside the display title and
// enforce uniqueness on it.
package wiki
