package doctor

import "github.com/stretchr/testify/mock"

// MockCheck is a testify mock implementing Check.
type MockCheck struct {
	mock.Mock
}

// NewMockCheck creates a MockCheck whose expectations are asserted at cleanup.
func NewMockCheck(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCheck {
	m := &MockCheck{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type MockCheck_Expecter struct {
	mock *mock.Mock
}

func (m *MockCheck) EXPECT() *MockCheck_Expecter {
	return &MockCheck_Expecter{mock: &m.Mock}
}

func (m *MockCheck) Name() string {
	return m.Called().String(0)
}

func (m *MockCheck) Category() string {
	return m.Called().String(0)
}

func (m *MockCheck) Run() *CheckResult {
	ret := m.Called()
	r, _ := ret.Get(0).(*CheckResult)
	return r
}

type MockCheck_Call struct {
	*mock.Call
}

func (c *MockCheck_Call) Return(v any) *MockCheck_Call {
	c.Call.Return(v)
	return c
}

func (c *MockCheck_Call) Maybe() *MockCheck_Call {
	c.Call.Maybe()
	return c
}

func (e *MockCheck_Expecter) Name() *MockCheck_Call {
	return &MockCheck_Call{Call: e.mock.On("Name")}
}

func (e *MockCheck_Expecter) Category() *MockCheck_Call {
	return &MockCheck_Call{Call: e.mock.On("Category")}
}

func (e *MockCheck_Expecter) Run() *MockCheck_Call {
	return &MockCheck_Call{Call: e.mock.On("Run")}
}

// fixableCheck is a Check that also implements Fixer.
type fixableCheck struct {
	*MockCheck
	canFix bool
	fixed  int
}

func (f *fixableCheck) CanFix() bool { return f.canFix }

func (f *fixableCheck) Fix() []FixResult {
	f.fixed++
	return []FixResult{{Path: "x", Fixed: true, Description: "fixed"}}
}
