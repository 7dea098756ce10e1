package booking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInvalidRange, KindOf(NewInvalidRange("bad")))
	assert.Equal(t, KindConflict, KindOf(NewConflict("busy")))
	assert.Equal(t, KindNotFound, KindOf(NewNotFound("gone")))
	assert.Equal(t, Kind(0), KindOf(fmt.Errorf("plain")))
	assert.Equal(t, Kind(0), KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NewNotFound("gone"))
	assert.True(t, IsNotFound(err))
}
