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

// Package poisson is a generated GoMock package.
package poisson

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockTableCache is a mock of TableCache interface.
type MockTableCache struct {
	ctrl     *gomock.Controller
	recorder *MockTableCacheMockRecorder
	isgomock struct{}
}

// MockTableCacheMockRecorder is the mock recorder for MockTableCache.
type MockTableCacheMockRecorder struct {
	mock *MockTableCache
}

// NewMockTableCache creates a new mock instance.
func NewMockTableCache(ctrl *gomock.Controller) *MockTableCache {
	mock := &MockTableCache{ctrl: ctrl}
	mock.recorder = &MockTableCacheMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTableCache) EXPECT() *MockTableCacheMockRecorder {
	return m.recorder
}

// Get mocks base method.
func (m *MockTableCache) Get(lambda float64) (Table, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", lambda)
	ret0, _ := ret[0].(Table)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockTableCacheMockRecorder) Get(lambda any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockTableCache)(nil).Get), lambda)
}
