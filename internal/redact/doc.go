// Package redact masks secrets in code snippets before they are sent to any
// LLM provider.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private keys, AWS access key IDs and secret access keys, bearer
// tokens, database connection strings, and provider-specific tokens
// (Anthropic, OpenAI, Groq, GitHub, Slack). Each match is replaced by
// [REDACTED] in place, so line structure is preserved and the reviewer's
// comments still line up with the code the model sees.
package redact
