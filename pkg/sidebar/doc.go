// Package sidebar models the collapsible navigation sidebar of the admin
// shell. A Controller owns the single expanded flag; items see it only
// through the read-only State handle they are bound to, so an item cannot
// exist outside a controller and only the controller can toggle the flag.
// Views are pure projections of (item props, expanded) that templates render
// without further logic.
package sidebar
