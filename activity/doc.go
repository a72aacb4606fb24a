// Package activity provides the Bun backed read side of the activity_log
// table. Entries are written by the host application's audit logger; this
// package only lists and fetches them, applying tenant scope, column filters,
// nested property substring matches and day filters on created_at.
package activity
