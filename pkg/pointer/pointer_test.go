// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/hanqa/pkg/pointer"
)

/*
TestPointer covers the nil and zero-value edges.
*/
func TestPointer(t *testing.T) {
	assert.Equal(t, "expert", *pointer.To("expert"))
	assert.Equal(t, "", pointer.Val[string](nil))
	assert.True(t, pointer.Val(pointer.To(true)))

	assert.Nil(t, pointer.NonZero(""))
	assert.Equal(t, "worker", *pointer.NonZero("worker"))
}
