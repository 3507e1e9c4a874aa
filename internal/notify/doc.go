// Package notify delivers arm notifications to the remote endpoint.
//
// HTTPNotifier issues `GET /set_armed?armed={true|false}` requests. Notify
// performs one request and reports the outcome; Dispatch starts one on its own
// goroutine and forgets it, which is what the toggle controller relies on.
package notify
