package services

import "log"

// LogNotifier writes workflow events to the application log. Events are
// fire-and-forget: the surrounding interface shows them to the operator and
// nothing reads them back.
type LogNotifier struct{}

// Notify logs one event with its detail line.
func (LogNotifier) Notify(event, detail string) {
	log.Printf("%s: %s", event, detail)
}
