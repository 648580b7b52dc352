// Package render turns check results into user-facing views: JSON maps,
// tables, dashboard widgets, markdown documents, and HTML pages.
//
// Every check type has a Renderer looked up through an explicit Registry
// value that is constructed at application start and passed into whatever
// needs to render. A missing renderer is a configuration error, never a
// silent fallback; DefaultRenderer exists so simple check types can be
// registered with generic output.
package render
