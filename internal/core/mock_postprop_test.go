package core

import (
	"reflect"

	"github.com/golang/mock/gomock"
)

// MockPostPropagator is a hand-written mockgen-style mock for PostPropagator,
// used to assert the solver's reset-on-conflict and priority-ordering
// contracts without depending on a real post-propagator implementation.
type MockPostPropagator struct {
	ctrl     *gomock.Controller
	recorder *MockPostPropagatorMockRecorder
}

type MockPostPropagatorMockRecorder struct {
	mock *MockPostPropagator
}

func NewMockPostPropagator(ctrl *gomock.Controller) *MockPostPropagator {
	mock := &MockPostPropagator{ctrl: ctrl}
	mock.recorder = &MockPostPropagatorMockRecorder{mock}
	return mock
}

func (m *MockPostPropagator) EXPECT() *MockPostPropagatorMockRecorder {
	return m.recorder
}

func (m *MockPostPropagator) Init(s *Solver) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Init", s)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockPostPropagatorMockRecorder) Init(s interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Init", reflect.TypeOf((*MockPostPropagator)(nil).Init), s)
}

func (m *MockPostPropagator) Propagate(s *Solver) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Propagate", s)
	ret0, _ := ret[0].(bool)
	return ret0
}

func (mr *MockPostPropagatorMockRecorder) Propagate(s interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Propagate", reflect.TypeOf((*MockPostPropagator)(nil).Propagate), s)
}

func (m *MockPostPropagator) Reset() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Reset")
}

func (mr *MockPostPropagatorMockRecorder) Reset() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reset", reflect.TypeOf((*MockPostPropagator)(nil).Reset))
}

func (m *MockPostPropagator) Priority() uint32 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Priority")
	ret0, _ := ret[0].(uint32)
	return ret0
}

func (mr *MockPostPropagatorMockRecorder) Priority() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Priority", reflect.TypeOf((*MockPostPropagator)(nil).Priority))
}
