// Package offers stores donation offers received by a donor on this device.
package offers
