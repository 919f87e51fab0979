// Package scheduler runs the periodic grocery jobs. It keeps every stored
// grocery list in step with its chat's pantry and, when a reminder hour is
// configured, tells each chat once a day what is still left to buy.
package scheduler
