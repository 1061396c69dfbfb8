// Package compose prepares SMS text for dispatch.
//
// It sanitizes raw input, fills {{name}} template placeholders, appends the
// opt-out instruction, classifies the character set and works out how many
// transport segments the message occupies and what it costs. Every function
// is pure and total; nothing here performs I/O or keeps state between calls.
package compose
