// Package summary generates and caches short natural-language summaries of
// documents.
//
// Cache.GetOrGenerate is the single entry point. It reuses a document's
// stored summary unless regeneration is requested, short-circuits when the
// content already fits the length budget, and falls back to an extractive
// leading-sentences summary whenever the external summarizer fails. The
// fallback is deliberate policy: a summary request never fails because the
// model is down.
package summary
