// Copyright (c) 2026 FISBook. All rights reserved.

package uuidv7_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fisbook/users-api/pkg/uuidv7"
)

/*
TestNew verifies generated IDs parse and are unique.
*/
func TestNew(t *testing.T) {
	first := uuidv7.New()
	second := uuidv7.New()

	assert.True(t, uuidv7.IsValid(first))
	assert.True(t, uuidv7.IsValid(second))
	assert.NotEqual(t, first, second)
}

/*
TestIsValid rejects non-UUID strings.
*/
func TestIsValid(t *testing.T) {
	assert.False(t, uuidv7.IsValid(""))
	assert.False(t, uuidv7.IsValid("42"))
	assert.False(t, uuidv7.IsValid("not-a-uuid"))
	assert.True(t, uuidv7.IsValid("0190e3a4-1111-7abc-8000-0123456789ab"))
}
