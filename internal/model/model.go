package model

// Package model contains domain models/data structures.
// Models carry both bson and json tags; the bson names are the persisted document fields.

// Entity is the only part of a payload the repositories look at.
type Entity interface {
	GetID() int
	SetID(id int)
}
