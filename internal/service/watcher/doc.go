// Package watcher polls the endpoint's recorded arm state and logs transitions.
package watcher
