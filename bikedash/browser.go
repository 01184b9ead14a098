// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/kballard/go-shellquote"
)

// browserCommand returns the command line that opens url. configured
// is the browser command from the configuration; if it is empty,
// $BROWSER is used, and failing that the platform's opener.
func browserCommand(configured, url string) ([]string, error) {
	line := configured
	if line == "" {
		line = os.Getenv("BROWSER")
	}
	if line == "" {
		switch runtime.GOOS {
		case "darwin":
			return []string{"open", url}, nil
		case "windows":
			return []string{"rundll32", "url.dll,FileProtocolHandler", url}, nil
		default:
			return []string{"xdg-open", url}, nil
		}
	}

	words, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("parsing browser command %q: %w", line, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("empty browser command %q", line)
	}
	return append(words, url), nil
}

// openBrowser starts a browser on url without waiting for it to exit.
func openBrowser(configured, url string) error {
	args, err := browserCommand(configured, url)
	if err != nil {
		return err
	}
	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
