package utils

import (
	"testing"

	"go.viam.com/test"
)

func TestFloat64AlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1.0, 1.0, 0), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1.0, 1.0+1e-10, 1e-9), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1.0, 1.1, 1e-9), test.ShouldBeFalse)
	test.That(t, Float64AlmostEqual(-1.0, 1.0, 3), test.ShouldBeTrue)
}

func TestClamp(t *testing.T) {
	test.That(t, Clamp(0.5, 0, 1), test.ShouldEqual, 0.5)
	test.That(t, Clamp(-2, 0, 1), test.ShouldEqual, 0)
	test.That(t, Clamp(7, 0, 1), test.ShouldEqual, 1)
}

func TestMaxInt(t *testing.T) {
	test.That(t, MaxInt(2, 5), test.ShouldEqual, 5)
	test.That(t, MaxInt(5, 2), test.ShouldEqual, 5)
	test.That(t, MaxInt(-3, -3), test.ShouldEqual, -3)
}
