// Package task runs background work.
//
// Tasks are persisted through a TaskStore before they are queued, so work
// survives a restart: on Start the runner restores pending and interrupted
// tasks through the Registry, and a monitor periodically resets tasks stuck in
// processing. Tasks are created from events by TaskFactoryEventHandler.
package task
