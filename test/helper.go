package test

import (
	"bytes"
	"reflect"
	"testing"
)

func NoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

// ExpectEqual asserts the provided interfaces are deep equal
func ExpectEqual(t *testing.T, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("Values not equal:\nExpected:\t%v\nActual:\t\t%v", want, got)
	}
}

func ExpectEqualBytes(t *testing.T, want, got []byte) {
	t.Helper()
	if !bytes.Equal(want, got) {
		t.Fatalf("Bytes not equal:\nExpected:\t%v\nActual:\t\t%v", want, got)
	}
}
