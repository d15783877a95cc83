package common

import (
	"fmt"
	"net"
	"os/exec"
	"runtime"
	"strconv"
)

const portSearchRange = 100

// FindAvailablePort returns the first port from start that accepts a
// listener, or start itself when the whole range is taken.
func FindAvailablePort(start int) int {
	for port := start; port < start+portSearchRange; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			continue
		}
		ln.Close()
		return port
	}
	return start
}

func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

// ParseID parses a positive numeric path id.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// QueryInt returns the integer query value, or def when missing or invalid.
func QueryInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
