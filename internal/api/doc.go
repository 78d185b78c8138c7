// Package api handles incoming HTTP requests for folders, study sets,
// vocabulary import and study sessions. Handlers decode and validate
// requests, call the services and map their errors to status codes.
package api
