/*
Package memory provides typed random access over a fixed-size byte region.

A region is addressed by an explicit int64 index for every call; there is no internal cursor,
so no operation leaves observable position state behind. All multi-byte values are encoded
big-endian, and the get and put halves of every accessor agree on that order.

Every accessor validates its window before touching memory. A rejected call never mutates
the region.

Bulk transfers accept a closed set of sink and source kinds, see SinkKind and SourceKind.
Check with SupportsSink / SupportsSource; anything else is rejected with ErrUnsupportedSink /
ErrUnsupportedSource and never attempted.

Sharp edge: DataAt returns a view that aliases the parent storage. Writes made through the
parent after the view was obtained are visible through the view. Use BytesAt for a snapshot.

Regions are single-owner. Nothing in this package synchronizes access; callers sharing a
region between goroutines must serialize access themselves.
*/
package memory
