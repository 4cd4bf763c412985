// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command admin-passwd prints the bcrypt hash to use as ADMIN_PASSWORD_HASH.
//
// The password is read from the first line of stdin so it never shows up in
// shell history or the process list:
//
//	printf '%s\n' "$PASSWORD" | go run ./cmd/admin-passwd
//	go run ./cmd/admin-passwd -env < password.txt
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/taibuivan/hanqa/internal/platform/sec"
)

func main() {
	asEnv := flag.Bool("env", false, "Print as an ADMIN_PASSWORD_HASH=... line")
	flag.Parse()

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintf(os.Stderr, "Error reading password from stdin: %v\n", err)
		os.Exit(1)
	}

	hash, err := sec.HashPassword(strings.TrimRight(line, "\r\n"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}

	if *asEnv {
		fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
		return
	}
	fmt.Println(hash)
}
