// Package ui provides the user interface components for the Shield TUI.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├──────────────┬──────────────────────────────────────┤
//	│              │                                      │
//	│   Sidebar    │   Chat panel or Premium Calculator   │
//	│   (1/4)      │                                      │
//	│              │                                      │
//	├──────────────┴──────────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: singleton with the layout math. All size calculations go
// through it.
//
// Header: title, visible section and the service origin over a gradient.
//
// Sidebar: logo, tagline and the two feature tabs. A spinner marks the
// tab whose request is in flight.
//
// Chat: transcript viewport plus a one-line input. The input is disabled
// and a typing indicator shown while any request is outstanding.
//
// Predict: huh form for the applicant record, the calculate button and
// the last premium, beside the form when there is room.
//
// Autoscroll: watches transcript length and busy state; after a change it
// asks Chat to scroll to the newest content in small steps.
//
// Selection: mouse selection over the transcript, drawn on an ultraviolet
// screen buffer and copied on release.
//
// Modal: the blocking failure alert, dismissed with Enter or Esc.
//
// # Styles
//
// styles.go declares the style variables; theme.go fills them from the
// active Theme. SetTheme regenerates everything.
package ui
