//go:build tools

package config

import (
	_ "github.com/dmarkham/enumer"
)
