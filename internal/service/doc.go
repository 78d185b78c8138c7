// Package service contains the application use cases: accounts, folders and
// study sets with their vocabulary.
//
// Services coordinate domain objects and the repositories defined in
// internal/store. They own transactional boundaries, enforce that users only
// touch their own folders and study sets, and translate store errors into the
// sentinels declared in errors.go. Unexpected failures are wrapped in
// *ServiceError so the API layer can log the cause while returning a generic
// message.
//
// The package never depends on concrete infrastructure; cmd/server wires the
// postgres stores, the event emitter and the auth helpers in.
package service
