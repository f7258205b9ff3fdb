// Package driver models the delivery drivers that receive order assignments.
package driver
