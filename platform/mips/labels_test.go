package mips

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelAllocator(t *testing.T) {
	allocator := NewLabelAllocator()

	elseLabel, endLabel := allocator.If()
	assert.Equal(t, "ELSE0", elseLabel)
	assert.Equal(t, "ENDIF0", endLabel)

	elseLabel, endLabel = allocator.If()
	assert.Equal(t, "ELSE1", elseLabel)
	assert.Equal(t, "ENDIF1", endLabel)

	loopLabel, endLabel := allocator.While()
	assert.Equal(t, "WHILE0", loopLabel)
	assert.Equal(t, "ENDWHILE0", endLabel)

	assert.Equal(t, "ENDNEW0", allocator.New())
	assert.Equal(t, "ENDNEW1", allocator.New())
	assert.Equal(t, "ENDDELETE0", allocator.Delete())

	loopLabel, _ = allocator.While()
	assert.Equal(t, "WHILE1", loopLabel)
}
