// Package entities defines the value types shared by the build-time link
// planner and the device-side host bridge.
package entities
