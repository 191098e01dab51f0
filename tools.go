//go:build tools

package dispose

import (
	_ "github.com/matryer/moq"
	_ "github.com/mgechev/revive"
)
