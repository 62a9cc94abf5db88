// Package profile manages minimum needs profiles.
//
// A [Store] owns the profile directory: it seeds bundled profiles, lists,
// reads, writes and removes profile files, and can watch the directory for
// changes. A [Manager] holds the active profile. It loads it from the
// settings store with a fallback chain, persists it back, and pushes the
// derived parameters to subscribed [Consumer]s.
package profile
