// Package taxonomy resolves the activity log categories configured by the host
// application into the option lists and badge colors consumed by admin UIs.
//
// Four built-in categories (resources, models, access, notifications) and an
// open list of custom categories are flattened into a single ordered list of
// Category descriptors. Every resolver is a pure function over that list, so
// callers can memoize results for the lifetime of the process.
package taxonomy
