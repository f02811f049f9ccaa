package cmds

import "strings"

func strToBool(str string) bool {
	switch strings.ToLower(str) {
	case "true", "t", "yes", "y", "on", "1":
		return true
	}
	return false
}
