// Coderev rewrites blunt code review comments into empathetic, educational
// feedback using an LLM provider.
//
// Each comment is classified by tone, rephrased with a rationale, an example
// fix and a documentation link, and the run closes with an encouraging
// summary. Reports are printed as text or JSON, or exported as Markdown.
//
// Usage:
//
//	coderev review --sample --provider offline    # try it without an API key
//	coderev review --file users.py -c "Bad name."  # review a snippet
//	coderev review --format markdown --out .       # save empathetic_review_*.md
//	coderev serve --addr :8080                     # JSON API
//	coderev models doctor                          # check credentials
package main
