// Package broker fans recorded arm states out over MQTT.
//
// It embeds a mochi-mqtt broker with an inline client: every recorded state
// is published retained on Topic, so subscribers connecting later still get
// the last value.
package broker
