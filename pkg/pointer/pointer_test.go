// Copyright (c) 2026 FISBook. All rights reserved.

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fisbook/users-api/pkg/pointer"
)

/*
TestPointerHelpers covers To, Val, and Fallback with nil and non-nil inputs.
*/
func TestPointerHelpers(t *testing.T) {
	p := pointer.To("hola")
	assert.Equal(t, "hola", *p)
	assert.Equal(t, "hola", pointer.Val(p))

	var nilString *string
	assert.Equal(t, "", pointer.Val(nilString))
	assert.Equal(t, "fallback", pointer.Fallback(nilString, "fallback"))
	assert.Equal(t, "hola", pointer.Fallback(p, "fallback"))

	n := pointer.To(7)
	assert.Equal(t, 7, pointer.Val(n))

	var nilInt *int
	assert.Equal(t, 0, pointer.Val(nilInt))
}
