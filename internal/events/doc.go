// Package events provides a small in-process event bus.
//
// Services emit TaskRequestEvents without knowing which component turns them
// into background work; the task package subscribes a handler per event type.
package events
