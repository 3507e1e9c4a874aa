// Package arm implements the HTTP surface of the reference arm endpoint.
//
// It serves the operator page, the browser toggle script and the
// `/set_armed` notification route on top of echo, and hands every
// notification to a provided business-service interface.
package arm
