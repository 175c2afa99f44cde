package service

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Workout and cycle ids sort by creation time; catalogue ids are plain UUIDs.

func newWorkoutID() string { return "wod-" + ulid.Make().String() }

func newCycleID() string { return "cycle-" + ulid.Make().String() }

func newCatalogueID() string { return uuid.NewString() }
