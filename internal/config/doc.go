// Package config defines the settings shared by the arm-toggle binaries and
// provides helpers to load, validate and save them in YAML format.
//
// The client side needs the endpoint URL and the control identifier; the
// reference endpoint adds its HTTP, gRPC and optional MQTT listen addresses.
package config
