package system

import (
	"fmt"

	"github.com/shaply/automesh/matrix"
	"github.com/shaply/automesh/shared"
)

// fakeBody is the BodyHandle FakeSystem hands back from FindBody.
type fakeBody struct{ name string }

func (b fakeBody) Name() string { return b.name }

// FakeSystem is a deterministic, in-memory System used by package tests
// across sensor, jumpcondition, controller and automaton: every field is
// exported so a test can set up exact fixtures without a constructor.
type FakeSystem struct {
	DOF            int
	Configuration  matrix.Matrix
	FramePoses     map[string]matrix.Matrix
	ForceTorque    matrix.Matrix
	CurrentTime    matrix.Matrix
	KnownBodies    map[string]bool
}

// NewFakeSystem returns a FakeSystem with empty/zero fixtures; tests
// populate the fields they need.
func NewFakeSystem(dof int) *FakeSystem {
	return &FakeSystem{
		DOF:           dof,
		Configuration: matrix.New(dof, 1),
		FramePoses:    make(map[string]matrix.Matrix),
		ForceTorque:   matrix.New(6, 1),
		CurrentTime:   matrix.New(1, 1),
		KnownBodies:   make(map[string]bool),
	}
}

func (f *FakeSystem) GetDOF() int                        { return f.DOF }
func (f *FakeSystem) GetConfiguration() matrix.Matrix    { return f.Configuration }
func (f *FakeSystem) GetForceTorque() matrix.Matrix      { return f.ForceTorque }
func (f *FakeSystem) GetCurrentTime() matrix.Matrix      { return f.CurrentTime }

func (f *FakeSystem) GetFramePose(frame string) (matrix.Matrix, error) {
	pose, ok := f.FramePoses[frame]
	if !ok {
		return matrix.Matrix{}, fmt.Errorf("%w: unknown frame %q", shared.ErrSystemError, frame)
	}
	return pose, nil
}

func (f *FakeSystem) FindBody(name string) (BodyHandle, error) {
	if !f.KnownBodies[name] {
		return nil, fmt.Errorf("%w: unknown body %q", shared.ErrSystemError, name)
	}
	return fakeBody{name: name}, nil
}
