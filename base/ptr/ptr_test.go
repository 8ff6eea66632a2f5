package ptr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	req := require.New(t)
	p1 := String(`abc123`)
	p2 := String(`abc123`)

	req.Equal(`abc123`, *p1)
	req.False(p1 == p2)
	*p1 = ""
	req.Equal(`abc123`, *p2)
}
