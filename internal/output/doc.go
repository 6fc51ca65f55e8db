// Package output formats review reports for display or machine consumption.
//
// Three formats are supported:
//   - text: human-readable terminal output (default)
//   - json: the full structured report
//   - markdown: the downloadable empathetic review document
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*review.Report]. [WriteReport]
// handles destination selection.
package output
