// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

// Package occupancy is a generated GoMock package.
package occupancy

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockRandomSource is a mock of RandomSource interface.
type MockRandomSource struct {
	ctrl     *gomock.Controller
	recorder *MockRandomSourceMockRecorder
	isgomock struct{}
}

// MockRandomSourceMockRecorder is the mock recorder for MockRandomSource.
type MockRandomSourceMockRecorder struct {
	mock *MockRandomSource
}

// NewMockRandomSource creates a new mock instance.
func NewMockRandomSource(ctrl *gomock.Controller) *MockRandomSource {
	mock := &MockRandomSource{ctrl: ctrl}
	mock.recorder = &MockRandomSourceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRandomSource) EXPECT() *MockRandomSourceMockRecorder {
	return m.recorder
}

// Float64 mocks base method.
func (m *MockRandomSource) Float64() float64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Float64")
	ret0, _ := ret[0].(float64)
	return ret0
}

// Float64 indicates an expected call of Float64.
func (mr *MockRandomSourceMockRecorder) Float64() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Float64", reflect.TypeOf((*MockRandomSource)(nil).Float64))
}
