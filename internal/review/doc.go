// Package review builds the request sent to the model endpoint.
//
// [LoadTemplate] resolves the instruction template (prompt file or built-in
// default) and [Build] performs pure assembly of template, diff, and optional
// repository snapshot into a [providers.ReviewRequest].
package review
