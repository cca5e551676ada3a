package scheduler

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// IDSource hands out ids for subtasks that have no stable identity.
type IDSource interface {
	NewID() string
}

// UUIDSource draws random v4 UUIDs. It is the only non-deterministic input
// to a planning run.
type UUIDSource struct{}

func (UUIDSource) NewID() string { return uuid.New().String() }

// SequenceIDSource yields prefix1, prefix2, ... and is meant for tests.
type SequenceIDSource struct {
	Prefix string
	n      int
}

func (s *SequenceIDSource) NewID() string {
	s.n++
	return fmt.Sprintf("%s%d", s.Prefix, s.n)
}

var subtaskNamespace = uuid.MustParse("6f1c9a52-3d0b-4e8e-9a77-5b2f1d0c8e41")

// StableSubtaskID derives a name-based UUID from a subtask's identity, so the
// same milestone chunk keeps its id across planning runs.
func StableSubtaskID(assessmentTitle, milestoneTitle string, order int) string {
	name := assessmentTitle + "\x00" + milestoneTitle + "\x00" + strconv.Itoa(order)
	return uuid.NewSHA1(subtaskNamespace, []byte(name)).String()
}
