package assert

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"testing"
)

func Equal[T comparable](t *testing.T, expected, got T) bool {
	t.Helper()
	return Equalf(t, expected, got, "Items was not equal")
}

func Equalf[T comparable](t *testing.T, expected, got T, format string, args ...any) bool {
	t.Helper()
	if expected != got {
		t.Logf(`
%s
Expected: %v
     Got: %v`, fmt.Sprintf(format, args...), expected, got)
		t.Fail()
		return false
	}
	return true
}

func EqualSlice[T comparable](t *testing.T, expected, got []T) bool {
	t.Helper()
	if len(expected) != len(got) {
		t.Errorf(`Expected %d elements, but got %d
Expected: %v
     Got: %v`, len(expected), len(got), expected, got)
		return false
	}

	for i := range len(expected) {
		if !Equalf(t, expected[i], got[i], "Element %d was not equal", i) {
			return false
		}
	}

	return true
}

func NotEqual[T comparable](t *testing.T, unexpected, got T) bool {
	t.Helper()
	if unexpected == got {
		t.Logf(`
Items was equal
Expected: %v
     Got: %v`, unexpected, got)
		t.Fail()
		return false
	}
	return true
}

func NotNil(t *testing.T, got any) bool {
	t.Helper()
	if got == nil || reflect.ValueOf(got).IsNil() {
		t.Logf("Expected a value, but got nil")
		t.Fail()
		return false
	}

	return true
}

func Match[T ~string](t *testing.T, expectedRE string, got T) bool {
	t.Helper()
	re, err := regexp.Compile(expectedRE)
	if err != nil {
		t.Fatalf("unexpected regexp: %s", err)
		return false
	}

	match := re.MatchString(string(got))
	if !match {
		t.Logf(`
Must match %q
       Got %q`, expectedRE, got)
		t.Fail()
		return false
	}

	return true
}

func Truef(t *testing.T, got bool, format string, args ...any) bool {
	t.Helper()
	if !got {
		t.Logf(format, args...)
		t.Fail()
		return false
	}

	return true
}

func LessOrEqual[T cmp.Ordered](t *testing.T, limit, got T) bool {
	t.Helper()
	if got > limit {
		t.Logf(`
Expected at most: %v
             Got: %v`, limit, got)
		t.Fail()
		return false
	}

	return true
}

func GreaterOrEqual[T cmp.Ordered](t *testing.T, limit, got T) bool {
	t.Helper()
	if got < limit {
		t.Logf(`
Expected at least: %v
              Got: %v`, limit, got)
		t.Fail()
		return false
	}

	return true
}

func NoError(t *testing.T, got error) bool {
	t.Helper()
	if got != nil {
		t.Logf("Unexpected error: %s", got)
		t.Fail()
		return false
	}

	return true
}

func Error(t *testing.T, got error) bool {
	t.Helper()
	if got == nil {
		t.Logf("Expected error, but got nil")
		t.Fail()
		return false
	}

	return true
}

func ErrorIs(t *testing.T, expected, got error) bool {
	t.Helper()
	if !errors.Is(got, expected) {
		t.Logf(`
Error was not in the chain
Expected: %v
     Got: %v`, expected, got)
		t.Fail()
		return false
	}

	return true
}
