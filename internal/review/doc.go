// Package review contains the core types and pipeline for rewriting code
// review comments as empathetic, educational feedback.
//
// A run detects the snippet's language from an ordered pattern table,
// classifies each comment's tone by keyword, builds one feedback prompt per
// comment plus a closing summary prompt, and normalizes the model's replies
// into fully populated FeedbackItems. Any completion or parsing failure is
// contained to the comment it affects and replaced with a safe fallback, so a
// Report always has one entry per comment, in input order.
//
// Comments are processed sequentially unless Options.Concurrency is above
// one, in which case they fan out with bounded parallelism; results are still
// written by index and the summary call always runs last.
package review
