// Package monitor publishes clone transfer progress to an MQTT broker, and
// watches the transfers published by other machines.
package monitor
