// Package domain contains the core business entities of the vocabulary
// service: users, folders, study sets and the vocabulary records they hold.
// Entities validate themselves; persistence and transport live elsewhere.
package domain
