package tools

import (
	"fmt"
	"time"

	"github.com/golang/glog"
)

var isEnabled = true
var printTimestamp = true

func DisableLogger() {
	isEnabled = false
}

func DisableLoggerTimestamp() {
	printTimestamp = false
}

// Prints a user facing progress message. The message always reaches the glog info log.
func LogOutput(val ...interface{}) {
	glog.Infoln(val...)
	if isEnabled {
		if printTimestamp {
			fmt.Print("[" + time.Now().Format("2006-01-02 15.04:05.000") + "] ")
		}
		fmt.Println(val...)
	}
}
