// Package providers implements the Completer interface for each supported LLM
// provider.
//
// Supported providers: Groq and OpenAI (chat completions), Anthropic (Claude),
// Google (Gemini), Ollama / LMStudio for local models, and an offline
// stand-in that returns canned text without any network access.
//
// Every call is a single round trip. Transport failures and non-success
// statuses surface as *ServiceError; a successful call without usable text
// surfaces as *ResponseError. Nothing is retried or synthesized here.
//
// Use [New] to obtain a Completer by provider name and model string.
package providers
