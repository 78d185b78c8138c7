// Package studysession keeps study engines alive between HTTP requests.
//
// A session binds one engine (flashcards, multiple-choice or matching) to a
// user and a study set. Sessions live in an expiring LRU cache and are also
// dropped once they have been idle for longer than the configured TTL as
// measured by the manager's clock. Calls on one session are serialized;
// notifications emitted by the engine are buffered and handed out with the
// next snapshot.
package studysession
