package util

import (
	"fmt"
	"os"
)

// GetTempDir is the scratch area for pdf rendering intermediates.
func GetTempDir() string {
	return fmt.Sprintf("%s/rentsign", os.TempDir())
}
