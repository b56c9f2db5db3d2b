package utils

import (
	"log"
	"os"
)

// InitLogger returns the shared request/application logger.
func InitLogger() *log.Logger {
	return log.New(os.Stdout, "[LMS Admin] ", log.LstdFlags|log.LUTC)
}
