// Package storage provides persistent storage for pantry snapshots, cached recipes
// and grocery lists. It uses BadgerDB as the embedded database and stores values as JSON.
package storage
